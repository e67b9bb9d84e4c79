package scad

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ArroyoDev-LLC/3dframe/pkg/geometry"
)

// ReadBoreDirections scans a generated joint script and returns the bore
// declarations from its header, in declaration order. It is the inverse of
// the header Write emits and exists so a compiled joint can be checked
// against the layout it was built from.
func ReadBoreDirections(r io.Reader) ([]Bore, error) {
	var bores []Bore
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "// bore ") {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(line, "// "))
		// bore <id> dir <x> <y> <z> r <r>
		if len(fields) != 8 || fields[0] != "bore" || fields[2] != "dir" || fields[6] != "r" {
			return nil, fmt.Errorf("scad: malformed bore declaration %q", line)
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("scad: bore declaration %q: %w", line, err)
		}
		var nums [4]float64
		for i, f := range []string{fields[3], fields[4], fields[5], fields[7]} {
			nums[i], err = strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("scad: bore declaration %q: %w", line, err)
			}
		}
		bores = append(bores, Bore{
			StrutID:   id,
			Direction: geometry.Vec3{X: nums[0], Y: nums[1], Z: nums[2]},
			Radius:    nums[3],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scad: scan script: %w", err)
	}
	return bores, nil
}
