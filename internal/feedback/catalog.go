// internal/feedback/catalog.go
//
// Message pools for wrong guesses and lost rounds.
//
// Source (LoadCatalog):
//   1. If a path is given (TAUNTS_FILE), read pools from that file.
//   2. Otherwise use the copy embedded in the assets package.
//
// File format: one message per line under a [section] header.
//   [normal.high] [normal.low] ... [critical.low]  one pool per phase×direction
//   [defeat]                                       taunts for a lost round
// Blank lines and lines starting with '#' are ignored.
//
// Every pool must hold between minPoolSize and maxPoolSize messages or
// loading fails.

package feedback

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/mysterynumber/assets"
	"github.com/robalobadob/mysterynumber/internal/game"
)

const defeatSection = "defeat"

const (
	minPoolSize = 3
	maxPoolSize = 5
)

type poolKey struct {
	phase Phase
	dir   game.Result
}

// Catalog holds the message pools. It is read-only after loading and safe
// for concurrent use.
type Catalog struct {
	pools  map[poolKey][]string
	defeat []string
}

// LoadCatalog reads pools from path, or from the embedded defaults when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open taunts %s: %w", path, err)
	}
	defer f.Close()
	return ParseCatalog(f)
}

// DefaultCatalog parses the embedded taunts file.
func DefaultCatalog() (*Catalog, error) {
	f, err := assets.Taunts()
	if err != nil {
		return nil, fmt.Errorf("open embedded taunts: %w", err)
	}
	defer f.Close()
	return ParseCatalog(f)
}

// ParseCatalog reads the sectioned format described above.
func ParseCatalog(r io.Reader) (*Catalog, error) {
	c := &Catalog{pools: make(map[poolKey][]string)}

	section := ""
	lineNo := 0
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			if _, _, err := sectionKey(section); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			continue
		}
		if section == "" {
			return nil, fmt.Errorf("line %d: message outside of a section", lineNo)
		}

		key, isDefeat, _ := sectionKey(section)
		if isDefeat {
			c.defeat = append(c.defeat, line)
		} else {
			c.pools[key] = append(c.pools[key], line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return c, c.validate()
}

func sectionKey(name string) (poolKey, bool, error) {
	if name == defeatSection {
		return poolKey{}, true, nil
	}
	phase, dir, ok := strings.Cut(name, ".")
	if !ok {
		return poolKey{}, false, fmt.Errorf("unknown section %q", name)
	}
	k := poolKey{phase: Phase(phase), dir: game.Result(dir)}
	if !knownPhase(k.phase) || (k.dir != game.ResultHigh && k.dir != game.ResultLow) {
		return poolKey{}, false, fmt.Errorf("unknown section %q", name)
	}
	return k, false, nil
}

func knownPhase(p Phase) bool {
	for _, q := range Phases {
		if p == q {
			return true
		}
	}
	return false
}

func (c *Catalog) validate() error {
	for _, p := range Phases {
		for _, d := range []game.Result{game.ResultHigh, game.ResultLow} {
			if err := checkPoolSize(string(p)+"."+string(d), len(c.pools[poolKey{p, d}])); err != nil {
				return err
			}
		}
	}
	return checkPoolSize(defeatSection, len(c.defeat))
}

func checkPoolSize(section string, n int) error {
	switch {
	case n == 0:
		return fmt.Errorf("taunts: empty pool %s", section)
	case n < minPoolSize:
		return fmt.Errorf("taunts: pool %s has %d messages, need at least %d", section, n, minPoolSize)
	case n > maxPoolSize:
		return fmt.Errorf("taunts: pool %s has %d messages, at most %d allowed", section, n, maxPoolSize)
	}
	return nil
}

// poolFor returns a copy of the messages for a phase and direction.
func (c *Catalog) poolFor(p Phase, dir game.Result) []string {
	src := c.pools[poolKey{p, dir}]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Message picks uniformly from the pool for (p, dir). Repeats are allowed.
// Returns "" for a correct guess or an unknown pool.
func (c *Catalog) Message(rng game.Rand, p Phase, dir game.Result) string {
	pool := c.pools[poolKey{p, dir}]
	if len(pool) == 0 {
		return ""
	}
	return pool[rng.IntN(len(pool))]
}

// Defeat picks a taunt for a lost round.
func (c *Catalog) Defeat(rng game.Rand) string {
	if len(c.defeat) == 0 {
		return ""
	}
	return c.defeat[rng.IntN(len(c.defeat))]
}

// Stats returns pool sizes keyed by section name.
func (c *Catalog) Stats() map[string]int {
	out := make(map[string]int, len(c.pools)+1)
	for k, v := range c.pools {
		out[string(k.phase)+"."+string(k.dir)] = len(v)
	}
	out[defeatSection] = len(c.defeat)
	return out
}
