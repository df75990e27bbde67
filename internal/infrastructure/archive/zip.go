// Package archive empaqueta y desempaqueta archivos ZIP en memoria para exportación e importación.
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrEntryNotFound el ZIP no contiene la entrada pedida.
var ErrEntryNotFound = errors.New("zip: entrada no encontrada")

// WriteSingle empaqueta content en un ZIP en memoria con una única entrada comprimida (Deflate).
func WriteSingle(entryName string, content []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	fw, err := zw.CreateHeader(&zip.FileHeader{Name: entryName, Method: zip.Deflate})
	if err != nil {
		return nil, fmt.Errorf("zip: crear entrada %s: %w", entryName, err)
	}
	if _, err := fw.Write(content); err != nil {
		return nil, fmt.Errorf("zip: escribir %s: %w", entryName, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: cerrar archivo: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadEntry devuelve el contenido de entryName. maxBytes > 0 limita el tamaño descomprimido.
func ReadEntry(zipBytes []byte, entryName string, maxBytes int64) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, fmt.Errorf("zip: archivo inválido: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != entryName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("zip: abrir %s: %w", entryName, err)
		}
		defer rc.Close()

		var r io.Reader = rc
		if maxBytes > 0 {
			r = io.LimitReader(rc, maxBytes+1)
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("zip: leer %s: %w", entryName, err)
		}
		if maxBytes > 0 && int64(len(data)) > maxBytes {
			return nil, fmt.Errorf("zip: %s supera %d bytes", entryName, maxBytes)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, entryName)
}
