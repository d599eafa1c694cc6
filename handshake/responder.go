package handshake

import (
	"context"
	"errors"
	"io/fs"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rat/modsync/artifact"
	"github.com/rat/modsync/codec"
	"github.com/rat/modsync/common/types"
	"github.com/rat/modsync/hash"
	"github.com/rat/modsync/host"
	"github.com/rat/modsync/protocol"
	"github.com/rat/modsync/settings"
)

type ResponderOpt func(*Responder)

func WithResponderLogger(logger *zap.Logger) ResponderOpt {
	return func(r *Responder) {
		r.logger = logger
	}
}

func WithResponderConfig(cfg Config) ResponderOpt {
	return func(r *Responder) {
		r.cfg = cfg
	}
}

func WithHostSettings(s settings.Host) ResponderOpt {
	return func(r *Responder) {
		r.settings = s
	}
}

// WithBaseURL sets the url prefix under which the mods directory is published.
// Advertised items carry no url when it is empty.
func WithBaseURL(base string) ResponderOpt {
	return func(r *Responder) {
		r.baseURL = strings.TrimSuffix(base, "/")
	}
}

// Responder answers pings and download requests on the host side. It keeps no state
// per client and has no deadlines.
type Responder struct {
	logger   *zap.Logger
	cfg      Config
	fs       afero.Fs
	modsDir  string
	host     host.Host
	streamer ItemStreamer
	settings settings.Host
	baseURL  string
	hashes   *artifact.HashCache

	streams errgroup.Group
}

func NewResponder(fsys afero.Fs, modsDir string, h host.Host, streamer ItemStreamer, opts ...ResponderOpt) (*Responder, error) {
	r := &Responder{
		logger:   zap.NewNop(),
		cfg:      DefaultConfig(),
		fs:       fsys,
		modsDir:  modsDir,
		host:     h,
		streamer: streamer,
		settings: settings.DefaultHost(),
	}
	for _, opt := range opts {
		opt(r)
	}
	hashes, err := artifact.NewHashCache(fsys, 256)
	if err != nil {
		return nil, err
	}
	r.hashes = hashes
	r.streams.SetLimit(max(r.cfg.Streams, 1))
	return r, nil
}

// Register subscribes to the channels clients send on.
func (r *Responder) Register() {
	r.host.OnMessage(protocol.ChannelPing, r.onPing)
	r.host.OnMessage(protocol.ChannelDownloadRequest, r.onDownloadRequest)
	r.host.OnMessage(protocol.ChannelHandshakeComplete, r.onHandshakeComplete)
}

// Wait blocks until every started stream finished.
func (r *Responder) Wait() {
	r.streams.Wait()
}

func (r *Responder) onPing(ctx context.Context, from host.Peer, data []byte) {
	logger := r.logger.With(zap.String("peer", string(from)))
	var ping protocol.Ping
	if err := protocol.Decode(data, &ping); err != nil {
		droppedMessages.WithLabelValues(string(protocol.ChannelPing), "malformed").Inc()
		logger.Warn("dropped malformed ping", zap.Error(err))
		return
	}
	compatible := ping.ModID == protocol.ModID && ping.Version == protocol.Version
	pings.WithLabelValues(strconv.FormatBool(compatible)).Inc()
	resp := codec.MustEncode(&protocol.PingResponse{
		Compatible:         compatible,
		ModID:              protocol.ModID,
		Version:            protocol.Version,
		ArchiveModeEnabled: r.settings.ArchiveModeEnabled,
	})
	if err := r.host.SendToPeer(ctx, from, protocol.ChannelPingResponse, resp); err != nil {
		logger.Warn("failed to answer ping", zap.Error(err))
		return
	}

	hs, err := r.Handshake()
	if err != nil {
		logger.Error("failed to build handshake", zap.Error(err))
		return
	}
	if err := r.host.SendToPeer(ctx, from, protocol.ChannelHandshake, codec.MustEncode(hs)); err != nil {
		logger.Warn("failed to send handshake", zap.Error(err))
		return
	}
	logger.Info("handshake sent",
		zap.String("client_version", ping.Version),
		zap.Int("mods", len(hs.RequiredMods)),
		zap.Bool("archive_mode", hs.ArchiveMode),
	)
}

// Handshake describes the local inventory, each item annotated with its digest, size and url.
func (r *Responder) Handshake() (*protocol.Handshake, error) {
	local, err := r.host.ListLocalInventory()
	if err != nil {
		return nil, err
	}
	required := make([]types.ModDescriptor, 0, len(local))
	for _, desc := range local {
		required = append(required, r.annotate(desc))
	}
	hs := &protocol.Handshake{
		RequiredMods:    required,
		ProtocolVersion: protocol.Version,
	}
	if r.settings.ArchiveModeEnabled {
		hs.ArchiveMode = true
		hs.ArchiveURL = r.settings.ArchiveURL
		hs.ArchiveHash = r.settings.ArchiveHash
	}
	return hs, nil
}

func (r *Responder) annotate(desc types.ModDescriptor) types.ModDescriptor {
	name, err := artifact.BaseName(desc.FileName)
	if err != nil {
		r.logger.Debug("item without a local file", zap.Inline(desc))
		return desc
	}
	path := filepath.Join(r.modsDir, name)
	info, err := r.fs.Stat(path)
	if err != nil {
		r.logger.Debug("item without a local file", zap.Inline(desc), zap.Error(err))
		return desc
	}
	digest, err := r.hashes.Digest(path, hash.SHA256)
	if err != nil {
		r.logger.Warn("failed to hash item", zap.String("path", path), zap.Error(err))
		return desc
	}
	var source string
	if r.baseURL != "" {
		source = r.baseURL + "/" + url.PathEscape(name)
	}
	return desc.WithTransferInfo(digest, info.Size(), source)
}

func (r *Responder) onDownloadRequest(ctx context.Context, from host.Peer, data []byte) {
	logger := r.logger.With(zap.String("peer", string(from)))
	var req protocol.DownloadRequest
	if err := protocol.Decode(data, &req); err != nil {
		droppedMessages.WithLabelValues(string(protocol.ChannelDownloadRequest), "malformed").Inc()
		logger.Warn("dropped malformed download request", zap.Error(err))
		return
	}
	logger = logger.With(zap.String("item", req.ItemID), zap.String("file", req.FileName))
	if !r.settings.DirectDownloadEnabled {
		downloadRequests.WithLabelValues("disabled").Inc()
		logger.Info("download request ignored, downloads are disabled")
		return
	}
	name, err := artifact.BaseName(req.FileName)
	if err != nil {
		downloadRequests.WithLabelValues("unsafe").Inc()
		logger.Warn("download request for unsafe name", zap.Error(err))
		return
	}
	path := filepath.Join(r.modsDir, name)
	info, err := r.fs.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		downloadRequests.WithLabelValues("missing").Inc()
		logger.Warn("requested file does not exist")
		return
	case err != nil:
		downloadRequests.WithLabelValues("failure").Inc()
		logger.Warn("failed to stat requested file", zap.Error(err))
		return
	case info.IsDir():
		downloadRequests.WithLabelValues("missing").Inc()
		logger.Warn("requested file is a directory")
		return
	}
	if limit := r.settings.MaxTransferSize(); limit > 0 && info.Size() > limit {
		downloadRequests.WithLabelValues("too_large").Inc()
		logger.Warn("requested file exceeds the transfer limit",
			zap.Int64("size", info.Size()),
			zap.Int64("limit", limit),
		)
		return
	}
	downloadRequests.WithLabelValues("streamed").Inc()
	r.streams.Go(func() error {
		n, err := r.streamer.Stream(ctx, from, req.ItemID, path)
		if err != nil {
			logger.Warn("stream failed", zap.Int("chunks", n), zap.Error(err))
			return nil
		}
		logger.Info("item streamed", zap.Int("chunks", n), zap.Int64("size", info.Size()))
		return nil
	})
}

func (r *Responder) onHandshakeComplete(ctx context.Context, from host.Peer, data []byte) {
	var msg protocol.HandshakeComplete
	if err := protocol.Decode(data, &msg); err != nil {
		droppedMessages.WithLabelValues(string(protocol.ChannelHandshakeComplete), "malformed").Inc()
		r.logger.Warn("dropped malformed handshake complete", zap.String("peer", string(from)), zap.Error(err))
		return
	}
	completions.WithLabelValues(strconv.FormatBool(msg.Success)).Inc()
	r.logger.Info("client finished handshake", zap.String("peer", string(from)), zap.Bool("success", msg.Success))
}
