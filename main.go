package main

import (
	"fmt"
	"strings"

	"github.com/exlskills/storyboardutil/assets"
	"github.com/exlskills/storyboardutil/blockdoc"
	"github.com/exlskills/storyboardutil/config"
	"github.com/exlskills/storyboardutil/deck"
	"github.com/exlskills/storyboardutil/extfmt"
	"github.com/exlskills/storyboardutil/ir"
	"github.com/exlskills/storyboardutil/pdf"
	"github.com/exlskills/storyboardutil/rise"
	"github.com/exlskills/storyboardutil/script"
	"github.com/exlskills/storyboardutil/server"
	"github.com/exlskills/storyboardutil/table"
	"github.com/exlskills/storyboardutil/vtt"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	serveCmd = kingpin.Command("serve", "Run the export HTTP server")

	convertCmd        = kingpin.Command("convert", "Convert a storyboard from one supported format to another")
	convertForce      = convertCmd.Flag("force", "Overwrite the destination if it already exists").Default("false").Bool()
	convertFromFormat = convertCmd.Flag("from-format", "The source format to convert from").Default("script").String()
	convertFromURI    = convertCmd.Flag("from-uri", "The URI to the source").Required().String()
	convertToFormat   = convertCmd.Flag("to-format", "The destination format to convert to (or zip for deck and quiz table)").Default("pptx").String()
	convertToURI      = convertCmd.Flag("to-uri", "The destination URI").Required().String()
	convertTitle      = convertCmd.Flag("title", "Deck title, defaults to the source file name").String()
	convertThemeFile  = convertCmd.Flag("theme-file", "YAML theme profile with font and color settings").String()

	batchCmd       = kingpin.Command("batch", "Convert many storyboard files concurrently")
	batchToFormat  = batchCmd.Flag("to-format", "The destination format to convert to (or zip)").Default("pptx").String()
	batchOutDir    = batchCmd.Flag("out-dir", "Directory the converted files are written to").Required().String()
	batchWorkers   = batchCmd.Flag("workers", "Number of files converted at once").Default("4").Int()
	batchForce     = batchCmd.Flag("force", "Overwrite destinations that already exist").Default("false").Bool()
	batchThemeFile = batchCmd.Flag("theme-file", "YAML theme profile with font and color settings").String()
	batchFiles     = batchCmd.Arg("files", "Script, table or block files to convert").Required().Strings()

	verifyCmd    = kingpin.Command("verify", "Check that a storyboard (or a generated deck) can be read")
	verifyFormat = verifyCmd.Flag("format", "The format the source should conform to").Default("script").String()
	verifyURI    = verifyCmd.Flag("uri", "The URI of the source").Required().String()
)

var Log = config.Cfg().GetLogger()

// formatAliases maps user-facing names onto registry keys.
var formatAliases = map[string]string{
	"md":   "script",
	"csv":  "table",
	"xlsx": "table",
	"xls":  "table",
	"tsv":  "table",
	"yaml": "blocks",
	"json": "blocks",
}

func init() {
	extfmt.RegisterExtFmt("script", script.NewScriptFormat())
	extfmt.RegisterExtFmt("table", table.NewTableFormat())
	extfmt.RegisterExtFmt("blocks", blockdoc.NewBlockDocFormat())
	extfmt.RegisterExtFmt("pptx", deck.NewDeckFormat())
	extfmt.RegisterExtFmt("rise", rise.NewRiseFormat())
	extfmt.RegisterExtFmt("vtt", vtt.NewVTTFormat())
	extfmt.RegisterExtFmt("pdf", pdf.NewPDFExtFmt())
}

func main() {
	kingpin.UsageTemplate(kingpin.CompactUsageTemplate).Version("0.1").Author("EXL Inc.")
	kingpin.CommandLine.Help = "Storyboard script converter - Utilities"
	switch kingpin.Parse() {
	case "serve":
		if err := server.Serve(); err != nil {
			Log.Fatalf("Server stopped with: %s", err.Error())
		}
	case "convert":
		opts := optionsF(*convertThemeFile)
		opts.Title = *convertTitle
		Log.Info("Importing storyboard for conversion ...")
		job := conversion{
			from:     verifyAndCleanURIF(*convertFromURI),
			fromKey:  resolveKey(*convertFromFormat),
			to:       verifyAndCleanURIF(*convertToURI),
			toFormat: strings.ToLower(*convertToFormat),
			force:    *convertForce,
			opts:     opts,
		}
		if job.toFormat != zipFormat {
			getExtFmtF(job.toFormat)
		}
		getExtFmtF(job.fromKey)
		slides, quizzes, err := job.run()
		if err != nil {
			Log.Fatalf("Storyboard conversion failed with: %s", err.Error())
		}
		Log.Infof("Successfully exported %d slides and %d quizzes to %s", slides, quizzes, job.to)
	case "batch":
		if *batchToFormat != zipFormat {
			getExtFmtF(*batchToFormat)
		}
		failed := runBatch(*batchFiles, *batchOutDir, strings.ToLower(*batchToFormat), *batchWorkers, *batchForce, optionsF(*batchThemeFile))
		if failed > 0 {
			Log.Fatalf("%d of %d files failed to convert", failed, len(*batchFiles))
		}
		Log.Infof("Successfully converted %d files", len(*batchFiles))
	case "verify":
		Log.Info("Importing storyboard for verification ...")
		uri := verifyAndCleanURIF(*verifyURI)
		if strings.ToLower(*verifyFormat) == "pptx" {
			if err := verifyDeck(uri); err != nil {
				Log.Fatalf("Deck verification failed with: %s", err.Error())
			}
			return
		}
		blocks, err := importURI(getExtFmtF(resolveKey(*verifyFormat)), uri)
		if err != nil {
			Log.Fatalf("Storyboard import verification failed with: %s", err.Error())
		}
		slides, quizzes := ir.CountBlocks(blocks)
		for i, b := range blocks {
			fmt.Printf("%3d  %-5s  %s\n", i+1, b.GetBlockType(), b.GetDisplayName())
		}
		Log.Infof("Successfully verified storyboard: %d slides, %d quizzes", slides, quizzes)
	default:
		Log.Fatal("Unknown command")
	}
}

func resolveKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if alias, ok := formatAliases[key]; ok {
		return alias
	}
	return key
}

func getExtFmtF(key string) extfmt.ExtFmt {
	impl := extfmt.GetImplementation(resolveKey(key))
	if impl == nil {
		Log.Fatalf("invalid format type: %s (known: %s)", key, strings.Join(extfmt.Keys(), ", "))
	}
	return impl
}

func verifyAndCleanURIF(uri string) string {
	var err error
	uri, err = assets.VerifyAndClean(uri)
	if err != nil {
		Log.Fatalf("invalid uri: %s", err.Error())
	}
	return uri
}

func optionsF(themeFile string) extfmt.Options {
	opts := extfmt.Options{Theme: config.Cfg().Theme()}
	if themeFile == "" {
		return opts
	}
	profile, err := config.LoadProfile(themeFile)
	if err != nil {
		Log.Fatalf("invalid theme file: %s", err.Error())
	}
	opts.Theme = profile.Theme.WithDefaults(opts.Theme)
	opts.MaxTextLines = profile.MaxTextLines
	opts.MaxBulletLines = profile.MaxBulletLines
	return opts
}
