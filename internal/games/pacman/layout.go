package pacman

// Layout symbols.
const (
	SymbolWall   = '#'
	SymbolDot    = '.'
	SymbolPellet = 'o'
	SymbolEmpty  = ' '
)

// Spawn is a starting cell and facing.
type Spawn struct {
	Col int       `json:"col" yaml:"col"`
	Row int       `json:"row" yaml:"row"`
	Dir Direction `json:"dir" yaml:"dir"`
}

// GhostSpawn places one ghost. Its spawn cell is also its home cell.
type GhostSpawn struct {
	Name string    `json:"name" yaml:"name"`
	Kind GhostKind `json:"kind" yaml:"kind"`

	Spawn `yaml:",inline"`
}

// Layout is a source maze plus the starting placement of every entity.
type Layout struct {
	Name   string       `json:"name" yaml:"name"`
	Rows   []string     `json:"rows" yaml:"rows"`
	Player Spawn        `json:"player" yaml:"player"`
	Ghosts []GhostSpawn `json:"ghosts" yaml:"ghosts"`
}

// classicRows is the 28x31 arcade maze. Row 14 is the side tunnel.
var classicRows = []string{
	"############################",
	"#............##............#",
	"#.####.#####.##.#####.####.#",
	"#o####.#####.##.#####.####o#",
	"#.####.#####.##.#####.####.#",
	"#..........................#",
	"#.####.##.########.##.####.#",
	"#.####.##.########.##.####.#",
	"#......##....##....##......#",
	"######.##### ## #####.######",
	"######.##### ## #####.######",
	"######.##          ##.######",
	"######.## ###  ### ##.######",
	"######.## #      # ##.######",
	"      .   #      #   .      ",
	"######.## #      # ##.######",
	"######.## ######## ##.######",
	"######.##          ##.######",
	"######.## ######## ##.######",
	"######.## ######## ##.######",
	"#............##............#",
	"#.####.#####.##.#####.####.#",
	"#.####.#####.##.#####.####.#",
	"#o..##.......  .......##..o#",
	"###.##.##.########.##.##.###",
	"###.##.##.########.##.##.###",
	"#......##....##....##......#",
	"#.##########.##.##########.#",
	"#.##########.##.##########.#",
	"#..........................#",
	"############################",
}

// ClassicLayout returns the built-in maze every host plays.
func ClassicLayout() Layout {
	rows := make([]string, len(classicRows))
	copy(rows, classicRows)
	return Layout{
		Name:   "classic",
		Rows:   rows,
		Player: Spawn{Col: 14, Row: 23, Dir: DirLeft},
		Ghosts: []GhostSpawn{
			{Name: "blinky", Kind: KindChaser, Spawn: Spawn{Col: 13, Row: 14, Dir: DirUp}},
			{Name: "pinky", Kind: KindAmbusher, Spawn: Spawn{Col: 14, Row: 14, Dir: DirRight}},
			{Name: "inky", Kind: KindErratic, Spawn: Spawn{Col: 13, Row: 15, Dir: DirDown}},
			{Name: "clyde", Kind: KindHybrid, Spawn: Spawn{Col: 14, Row: 15, Dir: DirLeft}},
		},
	}
}
