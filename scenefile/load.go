package scenefile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/mmap"
)

// Load reads a scene description from path. The format follows the
// extension: .json or .csv.
func Load(path string) (Description, error) {
	parse, err := parserFor(path)
	if err != nil {
		return Description{}, err
	}

	data, err := readMapped(path)
	if err != nil {
		return Description{}, fmt.Errorf("scenefile: read %s: %w", path, err)
	}

	desc, err := parse(data)
	if err != nil {
		return Description{}, fmt.Errorf("%s: %w", path, err)
	}
	return desc, nil
}

// Save writes desc to path in the format given by its extension.
func Save(path string, desc Description) error {
	var data []byte
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = Marshal(desc)
	case ".csv":
		data, err = FormatCSV(desc)
	default:
		return fmt.Errorf("scenefile: %s: %w", path, ErrUnknownFormat)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func parserFor(path string) (func([]byte) (Description, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON, nil
	case ".csv":
		return ParseCSV, nil
	}
	return nil, fmt.Errorf("scenefile: %s: %w", path, ErrUnknownFormat)
}

func readMapped(path string) ([]byte, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data := make([]byte, reader.Len())
	if len(data) == 0 {
		return data, nil
	}
	if _, err := reader.ReadAt(data, 0); err != nil {
		return nil, err
	}
	return data, nil
}
