package util

import (
	"os"
	"path/filepath"
)

// WriteToFile writes the strings to the file separated by new lines,
// creating parent directories when needed
func WriteToFile(savePath string, content ...string) error {
	if err := os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
		return err
	}
	out := ""
	for _, c := range content {
		out += c + "\n"
	}
	return os.WriteFile(savePath, []byte(out), 0644)
}

// AppendToFile appends the strings to the file separated by new lines,
// creating the file and parent directories when needed
func AppendToFile(savePath string, content ...string) error {
	if err := os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(savePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, s := range content {
		if _, err = f.WriteString(s + "\n"); err != nil {
			return err
		}
	}
	return nil
}
