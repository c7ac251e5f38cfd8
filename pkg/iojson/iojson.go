// iojson are utilities for reading and writing JSON IO from a
// command line interface perspective
package iojson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

func jsonError(msg string, jsonErr error) string {
	// Use json.Marshal to properly escape strings
	msgBytes, _ := json.Marshal(msg)
	errBytes, _ := json.Marshal(jsonErr.Error())
	return fmt.Sprintf(`{"message":%s,"data":{"json_error":%s}}`, msgBytes, errBytes)
}

// WriteWith writes obj as indented JSON to w. Marshal failures are reported
// as a JSON error object on ew.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		errStr := jsonError("error marshaling in iojson.Write", err)
		_, err = fmt.Fprintln(ew, errStr)
		return err
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// Write calls WriteWith with [os.Stdout] and [os.Stderr]
func Write(obj any) error {
	return WriteWith(os.Stdout, os.Stderr, obj)
}

// WriteRaw writes an already-encoded JSON document to w, indented. Input
// that is not valid JSON is written unchanged so nothing stored is hidden.
func WriteRaw(w io.Writer, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		buf.Reset()
		buf.Write(bytes.TrimRight(raw, "\n"))
	}
	buf.WriteByte('\n')

	_, err := w.Write(buf.Bytes())
	return err
}

// WriteLine writes obj as a single line of compact JSON.
func WriteLine(w io.Writer, obj any) error {
	bits, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal json line: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
