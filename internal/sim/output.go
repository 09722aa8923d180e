package sim

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/elektrokombinacija/robovac/internal/core"
)

// OutputPath returns <dir>/<house>-<algo>.txt.
func OutputPath(dir, house, algo string) string {
	return filepath.Join(dir, house+"-"+algo+".txt")
}

// WriteOutput writes the run summary file, creating dir if needed.
func WriteOutput(dir string, res *Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.Create(OutputPath(dir, res.House, res.Algorithm))
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := EncodeOutput(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// EncodeOutput writes the output file format to w.
func EncodeOutput(w io.Writer, res *Result) error {
	bw := bufio.NewWriter(w)
	inDock := "FALSE"
	if res.InDock {
		inDock = "TRUE"
	}
	fmt.Fprintf(bw, "NumSteps = %d\n", res.NumSteps)
	fmt.Fprintf(bw, "DirtLeft = %d\n", res.DirtLeft)
	fmt.Fprintf(bw, "Status = %s\n", res.Status)
	fmt.Fprintf(bw, "InDock = %s\n", inDock)
	fmt.Fprintf(bw, "Score = %d\n", res.Score)
	fmt.Fprintln(bw, "Steps")
	for _, s := range res.Steps {
		bw.WriteString(s.Code())
	}
	bw.WriteByte('\n')
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// Output is a decoded output file.
type Output struct {
	NumSteps int
	DirtLeft int
	Status   string
	InDock   bool
	Score    int
	Steps    []core.Step
}

// ReadOutput loads an output file.
func ReadOutput(path string) (*Output, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeOutput(f)
}

// DecodeOutput parses the output file format.
func DecodeOutput(r io.Reader) (*Output, error) {
	out := &Output{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "Steps" {
			if sc.Scan() {
				for i, c := range []byte(strings.TrimSpace(sc.Text())) {
					s, ok := core.ParseStep(c)
					if !ok {
						return nil, fmt.Errorf("invalid step %q at %d", c, i)
					}
					out.Steps = append(out.Steps, s)
				}
			}
			break
		}

		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		switch key {
		case "Status":
			out.Status = val
		case "InDock":
			out.InDock = val == "TRUE"
		case "NumSteps", "DirtLeft", "Score":
			n, err := strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("invalid %s %q: %w", key, val, err)
			}
			switch key {
			case "NumSteps":
				out.NumSteps = n
			case "DirtLeft":
				out.DirtLeft = n
			default:
				out.Score = n
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading output: %w", err)
	}
	return out, nil
}
