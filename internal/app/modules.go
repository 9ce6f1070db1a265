package app

import (
	"github.com/specialistvlad/schematree/internal/registry"
	"github.com/specialistvlad/schematree/modules/annot"
	"github.com/specialistvlad/schematree/modules/html"
	"github.com/specialistvlad/schematree/modules/markdown"
	"github.com/specialistvlad/schematree/modules/text"
)

// coreModules is the definitive list of all renderer modules that are
// compiled into the schematree binary.
var coreModules = []registry.Module{
	&text.Module{},
	&html.Module{},
	&markdown.Module{},
	&annot.Module{},
}
