// Command shift-dates rewrites the date literals in an SQL file with every
// year moved back by one, so sample invoice data stays in the recent past.
package main

import (
	"fmt"
	"os"

	"chinook-seeder/internal/datefix"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s input_file output_file\n", os.Args[0])
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Date shift completed. All invoice dates shifted back by 1 year.")
	fmt.Printf("Output written to %s\n", os.Args[2])
}

func run(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}

	if err := datefix.ShiftFile(in, out, -1); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
