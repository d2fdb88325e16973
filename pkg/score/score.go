package score

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/renameio/v2"
)

const (
	// NoScore is returned by Load when no best score has been recorded.
	NoScore = -1

	DefaultFile = "tetris.score"
)

// File stores the best score as plain text. The first line holds the score,
// anything after it is informational and ignored when reading.
type File struct {
	Path string

	// Holder is named on the line following the score.
	Holder string
}

func NewFile(path string, holder string) *File {
	if path == "" {
		path = DefaultFile
	}

	return &File{Path: path, Holder: holder}
}

func (f *File) Load() int {
	file, err := os.Open(f.Path)
	if err != nil {
		return NoScore
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return NoScore
	}

	score, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || score < 0 {
		return NoScore
	}

	return score
}

// Save replaces the stored score. Readers never observe a partially written
// file.
func (f *File) Save(score int) error {
	holder := f.Holder
	if holder == "" {
		holder = "Anonymous"
	}

	data := fmt.Sprintf("%d\n%s holds the tetristerm record\n", score, holder)

	err := renameio.WriteFile(f.Path, []byte(data), 0644)
	if err != nil {
		return fmt.Errorf("failed to save score to %s: %w", f.Path, err)
	}

	return nil
}

func (f *File) String() string {
	return f.Path
}
