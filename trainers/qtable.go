package trainers

import (
	"encoding/json"
	"math"
)

// QTable maps state hash -> action hash -> value
type QTable struct {
	table map[string]map[string]float64
}

func NewQTable() *QTable {
	return &QTable{
		table: make(map[string]map[string]float64),
	}
}

func (q *QTable) Get(state, action string, def float64) float64 {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
	}
	if _, ok := q.table[state][action]; !ok {
		q.table[state][action] = def
	}
	return q.table[state][action]
}

func (q *QTable) Set(state, action string, val float64) {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
	}
	q.table[state][action] = val
}

func (q *QTable) HasState(state string) bool {
	_, ok := q.table[state]
	return ok
}

// Max returns the best action and value recorded for the state
func (q *QTable) Max(state string, def float64) (string, float64) {
	if _, ok := q.table[state]; !ok || len(q.table[state]) == 0 {
		return "", def
	}
	maxAction := ""
	maxVal := math.Inf(-1)
	for a, val := range q.table[state] {
		if val > maxVal {
			maxVal = val
			maxAction = a
		}
	}
	return maxAction, maxVal
}

// MaxAmong returns the best action restricted to the given set, initializing
// unseen pairs with the default value
func (q *QTable) MaxAmong(state string, actions []string, def float64) (string, float64) {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
	}
	maxAction := ""
	maxVal := math.Inf(-1)
	for _, a := range actions {
		if _, ok := q.table[state][a]; !ok {
			q.table[state][a] = def
		}
		if q.table[state][a] > maxVal {
			maxVal = q.table[state][a]
			maxAction = a
		}
	}
	return maxAction, maxVal
}

func (q *QTable) States() int {
	return len(q.table)
}

func (q *QTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.table)
}

func (q *QTable) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &q.table)
}
