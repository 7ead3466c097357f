package extfmt

import (
	"io"

	"github.com/exlskills/storyboardutil/ir"
)

// Source is one input document: a file name (used for extension sniffing) and its contents.
type Source struct {
	Name string
	Data []byte
}

// Options carry the per-request render settings for exporters.
type Options struct {
	Title          string
	Theme          ir.Theme
	MaxTextLines   int
	MaxBulletLines int
}

type ExtFmt interface {
	Import(from Source) (toBlocks []ir.Block, err error)
	Export(fromBlocks []ir.Block, opts Options, to io.Writer) (err error)
	// FileExtension and MIMEType describe the exported artifact.
	FileExtension() string
	MIMEType() string
}
