package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// datatool converts the legacy binary object formats to the JSON object
// maps the game loads:
//
//	CMOB  one object: magic, prototype id, position, payload to EOF
//	CMOM  object map: magic, 64-bit table pointer, then a table of
//	      (prototype id, position, payload offset) entries
//
// The output tree mirrors the input tree with .json extensions.

const payloadSize = 128

type objectJSON struct {
	Type     string         `json:"type"`
	Position fvec2          `json:"position"`
	Data     map[string]any `json:"data"`
}

func main() {
	out := flag.String("out", "assets", "Output directory for converted files")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: datatool [-out dir] <original-assets-dir>")
		os.Exit(2)
	}
	srcRoot := flag.Arg(0)

	failed := 0
	err := filepath.WalkDir(srcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".cmob" && ext != ".cmom" {
			return nil
		}

		rel, err := filepath.Rel(srcRoot, path)
		if err != nil {
			return err
		}
		target := filepath.Join(*out, strings.TrimSuffix(rel, filepath.Ext(rel))+".json")
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}

		if ext == ".cmob" {
			err = convertObjectFile(path, target)
		} else {
			err = convertObjectMap(path, target)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to convert %s: %v\n", rel, err)
			failed++
		}
		return nil
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// pad widens a payload to the fixed struct size. Older assets were written
// without trailing zeroes.
func pad(payload []byte) []byte {
	padded := make([]byte, payloadSize)
	copy(padded, payload)
	return padded
}

func convertObjectFile(srcPath, targetPath string) error {
	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	if len(raw) < 16 || !bytes.HasPrefix(raw, []byte("CMOB")) {
		return fmt.Errorf("not a CMOB file")
	}

	r := bytes.NewReader(raw[4:])
	var header struct {
		PrototypeID int32
		Position    fvec2
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return err
	}

	name, data, err := decodeObjectData(header.PrototypeID, pad(raw[16:]))
	if err != nil {
		return err
	}
	return writeJSON(targetPath, objectJSON{
		Type:     name,
		Position: header.Position,
		Data:     data,
	})
}

func convertObjectMap(srcPath, targetPath string) error {
	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	if len(raw) < 12 || !bytes.HasPrefix(raw, []byte("CMOM")) {
		return fmt.Errorf("not a CMOM file")
	}

	tableOffset := binary.LittleEndian.Uint64(raw[4:])
	if tableOffset+4 > uint64(len(raw)) {
		return fmt.Errorf("object table offset out of range")
	}

	r := bytes.NewReader(raw[tableOffset:])
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return err
	}

	objects := make([]objectJSON, 0, count)
	for i := int32(0); i < count; i++ {
		var entry struct {
			PrototypeID int32
			Position    fvec2
			DataOffset  int32
		}
		if err := binary.Read(r, binary.LittleEndian, &entry); err != nil {
			return err
		}
		// A broken object doesn't sink the whole map; the rest still
		// converts.
		if entry.DataOffset < 0 || int(entry.DataOffset) > len(raw) {
			fmt.Fprintf(os.Stderr, "%s: object %d: payload offset out of range, skipped\n", srcPath, i)
			continue
		}

		name, data, err := decodeObjectData(entry.PrototypeID, pad(raw[entry.DataOffset:]))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: object %d: %v, skipped\n", srcPath, i, err)
			continue
		}
		objects = append(objects, objectJSON{
			Type:     name,
			Position: entry.Position,
			Data:     data,
		})
	}
	return writeJSON(targetPath, objects)
}

func writeJSON(path string, v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, encoded, 0o644)
}
