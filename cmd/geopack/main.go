// Command geopack converts a directory of GeoJSON outlines into the binary
// map bundle read by retro-terminal --geodata.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/lixenwraith/retro-terminal/geodata"
)

func main() {
	fs := pflag.NewFlagSet("geopack", pflag.ContinueOnError)
	in := fs.StringP("in", "i", "", "directory holding one GeoJSON file per catalog map (default built-in maps)")
	out := fs.StringP("out", "o", "maps.bin", "bundle file to write")
	list := fs.BoolP("list", "l", false, "print the maps and point counts without writing")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if err := run(*in, *out, *list, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "geopack: %v\n", err)
		os.Exit(1)
	}
}

func run(in, out string, list bool, w io.Writer) error {
	var (
		store *geodata.Store
		err   error
	)
	if in == "" {
		store, err = geodata.LoadEmbedded()
	} else {
		store, err = geodata.LoadDir(in)
	}
	if err != nil {
		return err
	}

	total := 0
	for _, name := range store.Names() {
		m := store.MustMap(name)
		total += m.Points()
		if list {
			fmt.Fprintf(w, "%-16s %5d lines %7d points\n", name, len(m.Lines), m.Points())
		}
	}
	if list {
		return nil
	}

	if err := geodata.WriteBundleFile(out, store); err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote %s: %d maps, %d points\n", out, len(store.Names()), total)
	return nil
}
