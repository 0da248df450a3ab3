package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"
	"time"

	"log/slog"

	"thermo/internal/daemon"
	"thermo/internal/device"
	"thermo/internal/logging"
	"thermo/internal/logs"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path     string
	daemon   *daemon.Daemon
	logger   *slog.Logger
	listener net.Listener

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:     path,
		daemon:   d,
		logger:   logger,
		listener: listener,
		ctx:      serverCtx,
		cancel:   cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
// Each connection gets its own service instance carrying the peer's
// credentials so endpoint operations are attributed to the caller.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed",
					logging.Error(err),
					logging.String(logging.FieldEventType, "ipc_accept_failed"),
					logging.String("impact", "IPC clients may fail to connect"),
					logging.String(logging.FieldErrorHint, "Check socket permissions and restart the daemon if needed"))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				svc := &service{
					daemon: s.daemon,
					logger: s.logger,
					ctx:    s.ctx,
					caller: peerCaller(c),
				}
				rpcServer := rpc.NewServer()
				if err := rpcServer.RegisterName("Thermo", svc); err != nil {
					s.logger.Warn("register rpc service failed", logging.Error(err))
					_ = c.Close()
					return
				}
				rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err),
			logging.String(logging.FieldEventType, "ipc_socket_cleanup_failed"),
			logging.String("impact", "stale IPC socket may block future starts"),
			logging.String(logging.FieldErrorHint, "Remove the socket file manually or rerun thermo stop"))
	}
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
	ctx    context.Context
	caller device.Caller
}

func (s *service) log() *slog.Logger {
	if s.logger == nil {
		return logging.NewNop()
	}
	return s.logger.With(logging.String("component", "ipc"))
}

func (s *service) Start(_ StartRequest, resp *StartResponse) error {
	s.log().Debug("endpoint start requested")
	if err := s.daemon.Start(s.ctx); err != nil {
		resp.Started = false
		resp.Message = err.Error()
		return nil
	}
	status := s.daemon.Status(s.ctx)
	resp.Started = true
	resp.Endpoint = status.EndpointName
	resp.Identity = status.Identity
	resp.Message = "endpoint registered"
	s.log().Info("endpoint registered via IPC",
		logging.String(logging.FieldEventType, "daemon_start"))
	return nil
}

func (s *service) Stop(_ StopRequest, resp *StopResponse) error {
	s.log().Debug("endpoint stop requested")
	s.daemon.Stop()
	resp.Stopped = true
	s.log().Info("endpoint deregistered via IPC",
		logging.String(logging.FieldEventType, "daemon_stop"))
	return nil
}

func (s *service) Open(req OpenRequest, resp *OpenResponse) error {
	dev, err := s.daemon.Device()
	if err != nil {
		return err
	}
	caller := s.caller
	caller.Mode = req.Mode
	if err := dev.Open(s.ctx, caller); err != nil {
		return err
	}
	resp.Endpoint = dev.Name()
	resp.Identity = dev.Identity()
	return nil
}

func (s *service) CloseEndpoint(_ CloseRequest, resp *CloseResponse) error {
	dev, err := s.daemon.Device()
	if err != nil {
		return err
	}
	if err := dev.Close(s.ctx, s.caller); err != nil {
		return err
	}
	resp.Closed = true
	return nil
}

// Write stages the payload into the endpoint. Transfers that complete but
// fail to parse still count, so the malformed outcome travels in the
// response rather than as an RPC error; only rejected transfers error.
func (s *service) Write(req WriteRequest, resp *WriteResponse) error {
	dev, err := s.daemon.Device()
	if err != nil {
		return err
	}
	count := req.Count
	if count <= 0 {
		count = len(req.Payload)
	}
	n, err := dev.Write(s.ctx, []byte(req.Payload), count)
	if err != nil && n == 0 {
		return fmt.Errorf("%s: %w", device.KindOf(err), err)
	}

	stats := dev.Stats()
	resp.Accepted = n
	resp.Buffer = stats.Buffer
	if err != nil {
		resp.Outcome = string(device.OutcomeMalformed)
		resp.ErrorKind = string(device.KindOf(err))
		return nil
	}
	if conv, ok := dev.LastAttempt(); ok {
		resp.Outcome = string(conv.Outcome)
		if conv.Outcome == device.OutcomeConverted {
			out := conv.Converted
			resp.Converted = &out
		}
	}
	return nil
}

func (s *service) Read(req ReadRequest, resp *ReadResponse) error {
	dev, err := s.daemon.Device()
	if err != nil {
		return err
	}
	max := req.Max
	if max <= 0 || max > device.Capacity {
		max = device.Capacity
	}
	dst := make([]byte, max)
	n, err := dev.Read(s.ctx, dst)
	if err != nil {
		return fmt.Errorf("%s: %w", device.KindOf(err), err)
	}
	resp.Data = string(dst[:n])
	resp.Bytes = n
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.daemon.Status(s.ctx)
	resp.Running = status.Running
	resp.EndpointName = status.EndpointName
	resp.Identity = status.Identity
	resp.Reads = status.Endpoint.Reads
	resp.Writes = status.Endpoint.Writes
	resp.Active = status.Endpoint.Active
	resp.Buffer = status.Endpoint.Buffer
	resp.SocketPath = status.SocketPath
	resp.LockPath = status.LockFilePath
	resp.JournalPath = status.JournalPath
	resp.PID = status.PID
	return nil
}

func (s *service) History(req HistoryRequest, resp *HistoryResponse) error {
	records, err := s.daemon.History(s.ctx, req.Limit)
	if err != nil {
		return err
	}
	resp.Records = make([]ConversionRecord, 0, len(records))
	for _, rec := range records {
		resp.Records = append(resp.Records, ConversionRecord{
			ID:          rec.ID,
			Token:       rec.Token,
			Unit:        rec.Unit,
			InputValue:  rec.InputValue,
			OutputValue: rec.OutputValue,
			Outcome:     string(rec.Outcome),
			CreatedAt:   rec.CreatedAt,
		})
	}
	return nil
}

func (s *service) LogTail(req LogTailRequest, resp *LogTailResponse) error {
	logPath := s.daemon.LogPath()
	if logPath == "" {
		resp.Offset = 0
		return nil
	}
	wait := time.Duration(req.WaitMillis) * time.Millisecond
	if wait <= 0 && req.Follow {
		wait = time.Second
	}
	options := logs.TailOptions{
		Offset: req.Offset,
		Limit:  req.Limit,
		Follow: req.Follow,
		Wait:   wait,
	}
	ctx := s.ctx
	if req.Follow && wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(s.ctx, wait+500*time.Millisecond)
		defer cancel()
	}
	result, err := logs.Tail(ctx, logPath, options)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			resp.Offset = result.Offset
			return nil
		}
		return err
	}
	resp.Lines = result.Lines
	resp.Offset = result.Offset
	return nil
}

func (s *service) Totals(_ TotalsRequest, resp *TotalsResponse) error {
	totals, err := s.daemon.Totals(s.ctx)
	if err != nil {
		return err
	}
	resp.Attempts = totals.Attempts
	resp.Converted = totals.Converted
	resp.Malformed = totals.Malformed
	resp.UnknownUnit = totals.UnknownUnit
	return nil
}
