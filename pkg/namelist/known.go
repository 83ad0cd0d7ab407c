package namelist

// KnownGroups lists the FDS namelist group labels understood by the
// solver, with a one-line description. Used for REPL completion and
// for unknown-group warnings when canonicalizing a case; the codec
// itself accepts any label matching the grammar.
var KnownGroups = map[string]string{
	"HEAD": "case identifier and title",
	"TIME": "simulation time settings",
	"MISC": "miscellaneous global parameters",
	"MULT": "array multiplier for repeated geometry",
	"MESH": "computational mesh definition",
	"TRNX": "mesh stretching, x direction",
	"TRNY": "mesh stretching, y direction",
	"TRNZ": "mesh stretching, z direction",
	"INIT": "initial condition region",
	"ZONE": "pressure zone",
	"PRES": "pressure solver parameters",
	"WIND": "wind and atmospheric profile",
	"CLIP": "clipping of output quantities",
	"COMB": "combustion model parameters",
	"REAC": "gas phase reaction",
	"RADI": "radiation model parameters",
	"SPEC": "gas species",
	"PART": "lagrangian particle class",
	"PROP": "device and particle properties",
	"DEVC": "measurement device",
	"CTRL": "control function",
	"MATL": "solid material properties",
	"SURF": "boundary surface condition",
	"OBST": "rectangular obstruction",
	"GEOM": "complex geometry",
	"MOVE": "geometry transform",
	"HOLE": "hole in an obstruction",
	"VENT": "vent or boundary patch",
	"HVAC": "HVAC network component",
	"RAMP": "time or temperature ramp",
	"TABL": "tabular input data",
	"DUMP": "output dump control",
	"SLCF": "slice file output",
	"BNDF": "boundary file output",
	"ISOF": "isosurface file output",
	"PROF": "wall profile output",
	"TAIL": "end of input file",
}
