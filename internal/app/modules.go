package app

import (
	"github.com/specialistvlad/graphsync/internal/registry"
	"github.com/specialistvlad/graphsync/modules/generators"
	"github.com/specialistvlad/graphsync/modules/math"
	"github.com/specialistvlad/graphsync/modules/mix"
	"github.com/specialistvlad/graphsync/modules/triggers"
)

// coreModules is the definitive list of all class libraries that are
// compiled into the graphsync binary.
var coreModules = []registry.Module{
	&generators.Module{},
	&math.Module{},
	&mix.Module{},
	&triggers.Module{},
}
