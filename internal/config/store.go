// Package config implements the Configuration Store (§4.1): a typed,
// path-addressable view over several YAML documents, some immutable for the
// life of the process and some re-checked against their file's mtime on
// every access.
package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DocumentKind names one of the six logical documents described in §3.
type DocumentKind int

const (
	KindMain DocumentKind = iota
	KindGame
	KindSettings
	KindGameLocal
	KindIgnore
	KindTest
)

// DocRef identifies a specific document, including the game edition for the
// per-edition Game/GameLocal documents.
type DocRef struct {
	kind    DocumentKind
	edition string
}

// Store is the dependency-injected handle every component reads
// configuration through (§9 "Singleton Configuration Store →
// dependency-injected handle" — constructed once, passed explicitly, never
// a package-level global).
type Store struct {
	baseDir string
	logger  *logrus.Logger

	main     *document
	settings *document
	ignore   *document
	test     *document

	mu          sync.Mutex
	gameCatalog map[string]*document
	gameLocal   map[string]*document
}

// NewStore constructs a Store rooted at baseDir (the directory containing
// "CLASSIC Data/", "CLASSIC Settings.yaml", etc.).
func NewStore(baseDir string, logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.New()
	}
	return &Store{
		baseDir:     baseDir,
		logger:      logger,
		main:        newDocument(filepath.Join(baseDir, MainCatalogPath), false, logger),
		settings:    newDocument(filepath.Join(baseDir, SettingsPath), true, logger),
		ignore:      newDocument(filepath.Join(baseDir, IgnorePath), true, logger),
		test:        newDocument(filepath.Join(baseDir, TestPath), true, logger),
		gameCatalog: make(map[string]*document),
		gameLocal:   make(map[string]*document),
	}
}

// MainRef, SettingsRef, IgnoreRef, TestRef, GameRef, and GameLocalRef return
// a DocRef suitable for Get/Set. Game* refs are parameterized by the game
// edition ("Fallout4", "Skyrim", ...).
func (s *Store) MainRef() DocRef             { return DocRef{kind: KindMain} }
func (s *Store) SettingsRef() DocRef         { return DocRef{kind: KindSettings} }
func (s *Store) IgnoreRef() DocRef           { return DocRef{kind: KindIgnore} }
func (s *Store) TestRef() DocRef             { return DocRef{kind: KindTest} }
func (s *Store) GameRef(edition string) DocRef      { return DocRef{kind: KindGame, edition: edition} }
func (s *Store) GameLocalRef(edition string) DocRef { return DocRef{kind: KindGameLocal, edition: edition} }

func (s *Store) resolve(ref DocRef) *document {
	switch ref.kind {
	case KindMain:
		return s.main
	case KindSettings:
		return s.settings
	case KindIgnore:
		return s.ignore
	case KindTest:
		return s.test
	case KindGame:
		return s.editionDoc(s.gameCatalog, fmt.Sprintf(GameCatalogPathFmt, ref.edition), false, ref.edition)
	case KindGameLocal:
		return s.editionDoc(s.gameLocal, fmt.Sprintf(GameLocalPathFmt, ref.edition), true, ref.edition)
	default:
		return newDocument("", true, s.logger)
	}
}

func (s *Store) editionDoc(cache map[string]*document, relPath string, mutable bool, edition string) *document {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := cache[edition]; ok {
		return d
	}
	d := newDocument(filepath.Join(s.baseDir, relPath), mutable, s.logger)
	cache[edition] = d
	return d
}

// PreloadImmutable eagerly loads all immutable documents in parallel
// (§4.1). Game catalogs for editions is a parameter because the set of
// editions in play isn't known until a scan targets a game.
func (s *Store) PreloadImmutable(editions ...string) error {
	g := new(errgroup.Group)
	g.Go(func() error {
		s.main.ensureFresh()
		return nil
	})
	for _, edition := range editions {
		edition := edition
		g.Go(func() error {
			s.resolve(s.GameRef(edition)).ensureFresh()
			return nil
		})
	}
	return g.Wait()
}
