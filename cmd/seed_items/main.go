// seed_items genera un script SQL para poblar ubicaciones e ítems del catálogo maestro
// a partir del export CSV del inventario antiguo (codificado en Windows-1250).
//
// Uso: go run ./cmd/seed_items [ruta/inventario.csv] [salida.sql]
// Por defecto lee inventario.csv y escribe seed_master_items.sql en el directorio actual.
//
// Formato esperado (separador ';', primera fila de encabezados):
//
//	nombre;unidad;ubicacion;responsable;valor
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	csvPath := "inventario.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	outPath := "seed_master_items.sql"
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := readRows(transform.NewReader(f, charmap.Windows1250.NewDecoder()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	sql := buildSQL(rows)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, []byte(sql), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Escrito %s: %d ítems\n", outPath, len(rows))
}
