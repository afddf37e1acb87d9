package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"profile-registry/pkg/registrydb"
)

// WriteJSON writes attributes to a JSON file with pretty formatting.
func WriteJSON(path string, attrs []registrydb.Attribute) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json: %w", err)
	}
	return encodeAndClose(f, attrs, EncodeJSON)
}

// EncodeJSON writes attributes as indented JSON to w.
func EncodeJSON(w io.Writer, attrs []registrydb.Attribute) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(attrs); err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	return nil
}

// WriteCSV writes attributes to a CSV file.
func WriteCSV(path string, attrs []registrydb.Attribute) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	return encodeAndClose(f, attrs, EncodeCSV)
}

// encodeAndClose reports the close error of a freshly written file, since
// that is where buffered write failures surface.
func encodeAndClose(wc io.WriteCloser, attrs []registrydb.Attribute, encode func(io.Writer, []registrydb.Attribute) error) error {
	err := encode(wc, attrs)
	if cerr := wc.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close output: %w", cerr)
	}
	return err
}

// EncodeCSV writes one header line and one record per attribute.
// Columns: id,name,type,active,implementation_class,param,order
func EncodeCSV(w io.Writer, attrs []registrydb.Attribute) error {
	cw := csv.NewWriter(w)
	headers := []string{"id", "name", "type", "active", "implementation_class", "param", "order"}
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, a := range attrs {
		active := "0"
		if a.Active {
			active = "1"
		}
		rec := []string{
			strconv.FormatInt(a.ID, 10),
			a.Name,
			strconv.Itoa(a.Type),
			active,
			a.ImplementationClass,
			a.Param,
			strconv.Itoa(a.Order),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
