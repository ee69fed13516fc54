// Command rotext renders rotext markup to HTML, or prints its block-id
// side table, from a file or stdin.
package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/google/renameio"

	"github.com/umajho/rotext-lite"
)

func main() {
	var (
		outPath string
		idTable bool
	)

	flag.StringVar(&outPath, "o", "", "write output to this file instead of stdout")
	flag.BoolVar(&idTable, "id-table", false, "print the block-id/line-number side table instead of HTML")
	flag.Parse()

	input, err := readInput(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	var out string
	if idTable {
		out, err = rotext.IDTable(input)
	} else {
		out, err = rotext.ParseAndRenderToHTML(input)
	}
	if err != nil {
		log.Fatal(err)
	}

	if err := writeOutput(outPath, out); err != nil {
		log.Fatal(err)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return ioutil.ReadAll(os.Stdin)
	}
	return ioutil.ReadFile(path)
}

func writeOutput(path, content string) (rerr error) {
	if path == "" {
		_, err := fmt.Fprint(os.Stdout, content)
		return err
	}

	pf, err := renameio.TempFile("", path)
	if err != nil {
		return err
	}
	defer func() {
		if rerr == nil {
			rerr = pf.CloseAtomicallyReplace()
		}
		rerr = pf.Cleanup()
	}()

	_, err = io.WriteString(pf, content)
	return err
}
