package leveldata

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"path"
	"strconv"
	"strings"

	"github.com/automoto/flipside/shared/gamemath"
)

// Parse reads the line-based level format:
//
//	type,x,y,width,height[,leftOffset,rightOffset]
//
// Blank lines and lines starting with '#' are skipped. Unknown types are
// ignored. Any malformed record rejects the whole level with a
// *MalformedRecordError. The last start record wins.
func Parse(r io.Reader) (*Description, error) {
	desc := &Description{}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := desc.parseLine(lineNo, line); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return desc, nil
}

// ParseString is Parse over an in-memory level.
func ParseString(s string) (*Description, error) {
	return Parse(strings.NewReader(s))
}

// LoadFile parses a level file from fsys. The level's name is the file stem.
func LoadFile(fsys fs.FS, name string) (*Description, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open level %s: %w", name, err)
	}
	defer f.Close()

	desc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", name, err)
	}
	desc.Name = strings.TrimSuffix(path.Base(name), path.Ext(name))
	return desc, nil
}

func (d *Description) parseLine(lineNo int, line string) error {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	typ := RecordType(fields[0])
	malformed := func(reason string, err error) error {
		return &MalformedRecordError{Line: lineNo, Text: line, Reason: reason, Err: err}
	}

	switch typ {
	case typeGround:
		typ = TypePlatform
	case TypeStart, TypeGoal, TypePlatform, TypePushable, TypeTrampoline,
		TypeWall3D, TypeVWall, TypeSpike, TypeCheckpoint, TypeSlope:
	default:
		return nil
	}

	want := 5
	if typ == TypeSlope {
		want = 7
	}
	if len(fields) != want {
		return malformed(fmt.Sprintf("want %d fields, got %d", want, len(fields)), nil)
	}

	nums := make([]float64, want-1)
	for i, f := range fields[1:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return malformed(fmt.Sprintf("field %d is not a number", i+1), err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return malformed(fmt.Sprintf("field %d is not finite", i+1), nil)
		}
		nums[i] = v
	}

	if typ == TypeStart {
		d.Start = Point{X: nums[0], Y: nums[1]}
		d.HasStart = true
		return nil
	}

	rect, err := gamemath.NewRect(nums[0], nums[1], nums[2], nums[3])
	if err != nil {
		return malformed("zero-area rectangle", err)
	}

	rec := Record{Type: typ, Rect: rect}
	switch typ {
	case TypeGoal:
		g := rect
		d.Goal = &g
		return nil
	case TypeSlope:
		if _, err := gamemath.NewSlope(rect, nums[4], nums[5]); err != nil {
			return malformed("slope offsets outside box", err)
		}
		rec.LeftOffset, rec.RightOffset = nums[4], nums[5]
	}
	d.Records = append(d.Records, rec)
	return nil
}

// Write emits desc in the text format Parse reads.
func Write(w io.Writer, desc *Description) error {
	bw := bufio.NewWriter(w)
	if desc.HasStart {
		fmt.Fprintf(bw, "%s,%s,%s,%s,%s\n", TypeStart,
			num(desc.Start.X), num(desc.Start.Y), num(StartWidth), num(StartHeight))
	}
	if desc.Goal != nil {
		writeRect(bw, TypeGoal, *desc.Goal)
		bw.WriteByte('\n')
	}
	for _, r := range desc.Records {
		writeRect(bw, r.Type, r.Rect)
		if r.Type == TypeSlope {
			fmt.Fprintf(bw, ",%s,%s", num(r.LeftOffset), num(r.RightOffset))
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write level: %w", err)
	}
	return nil
}

// String renders desc in the text format.
func (d *Description) String() string {
	var sb strings.Builder
	if err := Write(&sb, d); err != nil {
		return ""
	}
	return sb.String()
}

func writeRect(w *bufio.Writer, typ RecordType, r gamemath.Rect) {
	fmt.Fprintf(w, "%s,%s,%s,%s,%s", typ, num(r.X), num(r.Y), num(r.W), num(r.H))
}

// num formats whole numbers without a fraction so generated files stay
// readable.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// IsMalformed reports whether err is a rejected record.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedLevelData)
}
