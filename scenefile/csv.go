package scenefile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// csvRow gives the field count and object kind of each row code.
var csvRow = map[string]struct {
	kind   string
	fields int
}{
	"l": {KindLight, 5},
	"t": {KindTriangle, 13},
	"q": {KindQuad, 13},
	"s": {KindSphere, 8},
}

// ParseCSV decodes rows in the exporter layout. Row colours become specular
// surfaces; depth and world light take their defaults.
func ParseCSV(data []byte) (Description, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var desc Description
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Description{}, fmt.Errorf("scenefile: parse csv: %w", err)
		}
		line, _ := r.FieldPos(0)

		obj, err := parseRow(record)
		if err != nil {
			return Description{}, fmt.Errorf("scenefile: csv line %d: %w", line, err)
		}
		desc.Objects = append(desc.Objects, obj)
	}
	return desc, nil
}

func parseRow(record []string) (Object, error) {
	code := strings.ToLower(strings.TrimSpace(record[0]))
	layout, ok := csvRow[code]
	if !ok {
		return Object{}, fmt.Errorf("row code %q: %w", code, ErrUnknownKind)
	}
	// Exporters may leave a trailing comma.
	if len(record) == layout.fields+1 && strings.TrimSpace(record[layout.fields]) == "" {
		record = record[:layout.fields]
	}
	if len(record) != layout.fields {
		return Object{}, fmt.Errorf("%s row has %d fields, want %d: %w", code, len(record), layout.fields, ErrBadRow)
	}

	v := make([]float64, len(record)-1)
	for i, field := range record[1:] {
		f, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return Object{}, fmt.Errorf("field %d %q: %w", i+2, field, ErrBadRow)
		}
		v[i] = f
	}

	switch layout.kind {
	case KindLight:
		return Light([3]float64{v[0], v[1], v[2]}, v[3]), nil
	case KindSphere:
		return Sphere([3]float64{v[0], v[1], v[2]}, v[3], Specular(v[4], v[5], v[6])), nil
	}
	a := [3]float64{v[0], v[1], v[2]}
	b := [3]float64{v[3], v[4], v[5]}
	c := [3]float64{v[6], v[7], v[8]}
	s := Specular(v[9], v[10], v[11])
	if layout.kind == KindQuad {
		return Quad(a, b, c, s), nil
	}
	return Triangle(a, b, c, s), nil
}

// FormatCSV writes desc in the exporter layout. Planes, world light settings,
// depth and surface types other than specular colour have no CSV form and
// are rejected.
func FormatCSV(desc Description) ([]byte, error) {
	if desc.MaxDepth != nil {
		return nil, fmt.Errorf("scenefile: max_depth has no csv form: %w", ErrBadValue)
	}
	if desc.WorldLight != nil {
		return nil, fmt.Errorf("scenefile: world_light has no csv form: %w", ErrBadValue)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for i, o := range desc.Objects {
		record, err := formatRow(o)
		if err != nil {
			return nil, fmt.Errorf("scenefile: object %d (%s): %w", i, o.Kind, err)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatRow(o Object) ([]string, error) {
	num := func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
	colour := func() ([]string, error) {
		s := neutralSurface
		if o.Surface != nil {
			s = *o.Surface
		}
		if s.Type != SurfaceSpecular {
			return nil, fmt.Errorf("surface %q has no csv form: %w", s.Type, ErrUnknownSurface)
		}
		return []string{num(s.Colour[0]), num(s.Colour[1]), num(s.Colour[2])}, nil
	}

	switch o.Kind {
	case KindLight:
		if o.Origin == nil || o.Intensity == nil {
			return nil, ErrMissingField
		}
		return []string{"l", num(o.Origin[0]), num(o.Origin[1]), num(o.Origin[2]), num(*o.Intensity)}, nil
	case KindSphere:
		if o.Origin == nil || o.Radius == nil {
			return nil, ErrMissingField
		}
		c, err := colour()
		if err != nil {
			return nil, err
		}
		return append([]string{"s", num(o.Origin[0]), num(o.Origin[1]), num(o.Origin[2]), num(*o.Radius)}, c...), nil
	case KindTriangle, KindQuad:
		if len(o.Points) != 3 {
			return nil, ErrMissingField
		}
		record := []string{"t"}
		if o.Kind == KindQuad {
			record[0] = "q"
		}
		for _, p := range o.Points {
			record = append(record, num(p[0]), num(p[1]), num(p[2]))
		}
		c, err := colour()
		if err != nil {
			return nil, err
		}
		return append(record, c...), nil
	}
	return nil, fmt.Errorf("%q has no csv form: %w", o.Kind, ErrUnknownKind)
}
