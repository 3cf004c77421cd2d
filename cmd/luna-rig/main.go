package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/AtlasAudioDesigns/Luna/cmd"
	"github.com/AtlasAudioDesigns/Luna/panel"
)

var (
	dir        = flag.String("d", "", "directory holding the preset documents; defaults to the working directory")
	list       = flag.Bool("l", false, "list the rig presets with their slots")
	export     = flag.String("export", "", "export the named rig preset; requires -o")
	outPath    = flag.String("o", "", "output file for -export; a .json extension picks JSON, anything else YAML")
	importPath = flag.String("import", "", "import a preset exchange file (JSON or YAML) into the rig store")
	watch      = flag.Duration("watch", 0, "open a MIDI input and print parameter changes for this long (e.g. 30s)")
	midiInput  = flag.String("midi-input", "", "with -watch, connect to the first MIDI input whose name has this prefix")
	help       = flag.Bool("h", false, "show this help")
)

func main() {
	flag.Usage = printUsage
	flag.Parse()
	if *help || (!*list && *export == "" && *importPath == "" && *watch == 0) {
		flag.Usage()
		os.Exit(0)
	}

	broker := panel.NewBroker()
	midiContext := cmd.NewMIDIContext(broker)
	model := panel.NewModel(broker, midiContext, *dir)
	retval := 0

	switch {
	case *list:
		for _, name := range model.PresetNames() {
			slot, err := model.PresetSlot(name)
			if err != nil {
				continue
			}
			fmt.Printf("%-4s %s\n", slot, name)
		}
	case *export != "":
		if *outPath == "" {
			fmt.Fprintln(os.Stderr, "-export requires -o")
			retval = 1
			break
		}
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating %s: %v\n", *outPath, err)
			retval = 1
			break
		}
		if model.ExportPreset(f, *outPath, *export) != nil {
			retval = 1
		}
	case *importPath != "":
		f, err := os.Open(*importPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening %s: %v\n", *importPath, err)
			retval = 1
			break
		}
		if model.ImportPreset(f) != nil {
			retval = 1
		}
	case *watch > 0:
		if retval = openInput(model); retval == 0 {
			model.Bindings().AddListener(func(name string, canonical float64) {
				fmt.Printf("%s = %.1f\n", name, canonical)
			})
			go func() {
				time.Sleep(*watch)
				broker.CloseModel <- struct{}{}
			}()
			model.ProcessMessages()
		}
	}

	model.Close()
	midiContext.Close()
	for _, alert := range model.Alerts().Drain() {
		fmt.Fprintln(os.Stderr, alert.Message)
	}
	os.Exit(retval)
}

func openInput(model *panel.Model) int {
	if *midiInput != "" {
		if err := model.MIDI().OpenByPrefix(*midiInput); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		return 0
	}
	if len(model.MIDI().InputNames()) == 0 {
		fmt.Fprintln(os.Stderr, "no MIDI input devices available")
		return 1
	}
	if err := model.MIDI().Open(0); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Inspect and exchange Luna preset documents.")
	fmt.Fprintln(os.Stderr, "usage: luna-rig [flags]")
	flag.PrintDefaults()
}
