package generator

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/automoto/flipside/shared/leveldata"
)

// ErrBadCounter is returned when the counter file is not two integers.
var ErrBadCounter = errors.New("generator: malformed counter file")

// Counter is the batch state kept between runs: the number of the next
// level to write and how many to write per run.
type Counter struct {
	Next  int
	Count int
}

// ReadCounter reads a counter file. A missing file yields {1, defaultCount}.
func ReadCounter(path string, defaultCount int) (Counter, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Counter{Next: 1, Count: defaultCount}, nil
	}
	if err != nil {
		return Counter{}, fmt.Errorf("open counter: %w", err)
	}
	defer f.Close()

	var nums []int
	sc := bufio.NewScanner(f)
	for sc.Scan() && len(nums) < 2 {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 0 {
			return Counter{}, fmt.Errorf("%w: %q", ErrBadCounter, line)
		}
		nums = append(nums, n)
	}
	if err := sc.Err(); err != nil {
		return Counter{}, fmt.Errorf("read counter: %w", err)
	}
	if len(nums) != 2 {
		return Counter{}, ErrBadCounter
	}
	return Counter{Next: nums[0], Count: nums[1]}, nil
}

// WriteCounter stores c in the two-line format ReadCounter reads.
func WriteCounter(path string, c Counter) error {
	data := fmt.Sprintf("%d\n%d\n", c.Next, c.Count)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write counter: %w", err)
	}
	return nil
}

// LevelFileName is the file a batch writes level n to.
func LevelFileName(n int) string {
	return fmt.Sprintf("random%d.txt", n)
}

// Batch writes c.Count full-length levels into dir, numbered from c.Next,
// and returns the paths written with the counter advanced past them.
// Level n is generated from seed+n, so rerunning a batch with the same
// counter reproduces it.
func Batch(dir string, c Counter, seed uint64) ([]string, Counter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, c, fmt.Errorf("create levels dir: %w", err)
	}
	var paths []string
	for i := range c.Count {
		n := c.Next + i
		desc := New(seed + uint64(n)).Level()
		desc.Name = strings.TrimSuffix(LevelFileName(n), ".txt")

		p := filepath.Join(dir, LevelFileName(n))
		if err := writeLevel(p, desc); err != nil {
			return paths, c, err
		}
		paths = append(paths, p)
	}
	return paths, Counter{Next: c.Next + c.Count, Count: c.Count}, nil
}

func writeLevel(path string, desc *leveldata.Description) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create level: %w", err)
	}
	if err := leveldata.Write(f, desc); err != nil {
		f.Close()
		return fmt.Errorf("write level %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close level %s: %w", path, err)
	}
	return nil
}
