// Package settings loads and saves the client and host settings documents.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/rat/modsync/artifact"
)

const (
	ClientFileName = "client.json"
	HostFileName   = "host.json"
)

// ErrLoad is logged when a document is missing or corrupt and defaults were written instead.
var ErrLoad = errors.New("settings load failed")

// Source selects where the client fetches items from.
type Source string

const (
	SourceHost      Source = "HOST"
	SourceDirectURL Source = "DIRECT_URL"
)

var sourceAliases = map[string]Source{
	string(SourceHost):      SourceHost,
	string(SourceDirectURL): SourceDirectURL,
	"SERVER":                SourceHost,
	"INTERNET":              SourceDirectURL,
}

// ParseSource accepts canonical names and legacy aliases.
func ParseSource(s string) (Source, error) {
	src, ok := sourceAliases[s]
	if !ok {
		return "", fmt.Errorf("unknown download source %q", s)
	}
	return src, nil
}

// Client is the settings document of the connecting party.
type Client struct {
	AutoAcceptDownloads   bool   `json:"autoAcceptDownloads"   mapstructure:"autoAcceptDownloads"`
	AutoRestart           bool   `json:"autoRestart"           mapstructure:"autoRestart"`
	AutoRejoin            bool   `json:"autoRejoin"            mapstructure:"autoRejoin"`
	DefaultDownloadSource Source `json:"defaultDownloadSource" mapstructure:"defaultDownloadSource"`
	ShowMismatchPrompts   bool   `json:"showMismatchPrompts"   mapstructure:"showMismatchPrompts"`
}

func DefaultClient() Client {
	return Client{
		AutoRestart:           true,
		AutoRejoin:            true,
		DefaultDownloadSource: SourceHost,
		ShowMismatchPrompts:   true,
	}
}

// Host is the settings document of the answering party.
type Host struct {
	DirectDownloadEnabled bool   `json:"directDownloadEnabled" mapstructure:"directDownloadEnabled"`
	ArchiveModeEnabled    bool   `json:"archiveModeEnabled"    mapstructure:"archiveModeEnabled"`
	ArchiveURL            string `json:"archiveURL"            mapstructure:"archiveURL"`
	ArchiveHash           string `json:"archiveHash"           mapstructure:"archiveHash"`
	MaxTransferSizeMB     int    `json:"maxTransferSizeMB"     mapstructure:"maxTransferSizeMB"`
}

func DefaultHost() Host {
	return Host{
		DirectDownloadEnabled: true,
		MaxTransferSizeMB:     100,
	}
}

// MaxTransferSize in bytes.
func (h Host) MaxTransferSize() int64 {
	return int64(h.MaxTransferSizeMB) << 20
}

type Opt func(*Store)

func WithLogger(logger *zap.Logger) Opt {
	return func(s *Store) {
		s.logger = logger
	}
}

// Store reads and writes both documents in one directory.
type Store struct {
	logger *zap.Logger
	fs     afero.Fs
	dir    string

	clientSchema *jsonschema.Schema
	hostSchema   *jsonschema.Schema
}

func New(fsys afero.Fs, dir string, opts ...Opt) (*Store, error) {
	s := &Store{
		logger: zap.NewNop(),
		fs:     fsys,
		dir:    dir,
	}
	for _, opt := range opts {
		opt(s)
	}
	var err error
	if s.clientSchema, err = jsonschema.CompileString(ClientFileName, clientSchema); err != nil {
		return nil, fmt.Errorf("compile client settings schema: %w", err)
	}
	if s.hostSchema, err = jsonschema.CompileString(HostFileName, hostSchema); err != nil {
		return nil, fmt.Errorf("compile host settings schema: %w", err)
	}
	return s, nil
}

// Client loads the client document, replacing it with defaults when missing or corrupt.
func (s *Store) Client() (Client, error) {
	settings := DefaultClient()
	if err := s.load(ClientFileName, s.clientSchema, &settings); err != nil {
		s.logger.Warn("using default client settings", zap.Error(err))
		settings = DefaultClient()
		if err := s.SaveClient(settings); err != nil {
			return settings, err
		}
	}
	return settings, nil
}

// Host loads the host document, replacing it with defaults when missing or corrupt.
func (s *Store) Host() (Host, error) {
	settings := DefaultHost()
	if err := s.load(HostFileName, s.hostSchema, &settings); err != nil {
		s.logger.Warn("using default host settings", zap.Error(err))
		settings = DefaultHost()
		if err := s.SaveHost(settings); err != nil {
			return settings, err
		}
	}
	return settings, nil
}

func (s *Store) SaveClient(settings Client) error {
	return s.save(ClientFileName, settings)
}

func (s *Store) SaveHost(settings Host) error {
	return s.save(HostFileName, settings)
}

// Path of a document in the store.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *Store) load(name string, schema *jsonschema.Schema, result any) error {
	path := s.Path(name)
	data, err := afero.ReadFile(s.fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s does not exist", ErrLoad, path)
	} else if err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrLoad, path, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: unmarshal %s: %w", ErrLoad, path, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: validate %s: %w", ErrLoad, path, err)
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncType(sourceHook),
		Result:     result,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	if err := decoder.Decode(doc); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrLoad, path, err)
	}
	return nil
}

func (s *Store) save(name string, settings any) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	path := s.Path(name)
	if err := artifact.WriteFile(s.fs, path, bytes.NewReader(append(data, '\n'))); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func sourceHook(f, t reflect.Type, data any) (any, error) {
	if t != reflect.TypeOf(Source("")) || f.Kind() != reflect.String {
		return data, nil
	}
	return ParseSource(reflect.ValueOf(data).String())
}
