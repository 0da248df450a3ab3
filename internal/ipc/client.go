package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Start registers the endpoint and brings it online.
func (c *Client) Start() (*StartResponse, error) {
	var resp StartResponse
	if err := c.client.Call("Thermo.Start", StartRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stop deregisters the endpoint.
func (c *Client) Stop() (*StopResponse, error) {
	var resp StopResponse
	if err := c.client.Call("Thermo.Stop", StopRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Open opens the endpoint for this connection's process.
func (c *Client) Open(mode string) (*OpenResponse, error) {
	var resp OpenResponse
	if err := c.client.Call("Thermo.Open", OpenRequest{Mode: mode}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CloseEndpoint releases the endpoint for this connection's process.
func (c *Client) CloseEndpoint() (*CloseResponse, error) {
	var resp CloseResponse
	if err := c.client.Call("Thermo.CloseEndpoint", CloseRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Write stages a payload into the endpoint buffer.
func (c *Client) Write(payload string, count int) (*WriteResponse, error) {
	var resp WriteResponse
	req := WriteRequest{Payload: payload, Count: count}
	if err := c.client.Call("Thermo.Write", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Read drains up to max bytes from the endpoint buffer.
func (c *Client) Read(max int) (*ReadResponse, error) {
	var resp ReadResponse
	if err := c.client.Call("Thermo.Read", ReadRequest{Max: max}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Thermo.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// History returns recent journaled conversions.
func (c *Client) History(limit int) (*HistoryResponse, error) {
	var resp HistoryResponse
	if err := c.client.Call("Thermo.History", HistoryRequest{Limit: limit}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LogTail returns log lines from the daemon.
func (c *Client) LogTail(req LogTailRequest) (*LogTailResponse, error) {
	var resp LogTailResponse
	if err := c.client.Call("Thermo.LogTail", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Totals returns aggregate journal counts.
func (c *Client) Totals() (*TotalsResponse, error) {
	var resp TotalsResponse
	if err := c.client.Call("Thermo.Totals", TotalsRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
