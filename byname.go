package adsmux

import (
	"context"
	"fmt"
	"sort"

	"github.com/mrpasztoradam/adsmux/ams"
)

// getOrCreateHandle resolves name to a symbol handle, consulting the
// cache first and issuing GET_SYMHANDLE_BY_NAME on a miss (§4.4).
func (c *Client) getOrCreateHandle(ctx context.Context, name string) (uint32, error) {
	if h, ok := c.symbolHandles.get(name); ok {
		return h, nil
	}
	req := buildGetHandleRequest(c.target, c.sender, name)
	frame, err := c.Request(ctx, req)
	if err != nil {
		return 0, err
	}
	resp := &ams.ReadWriteResponse{}
	if err := resp.Decode(ams.NewBuffer(frame)); err != nil {
		return 0, err
	}
	if err := adsResultErr(resp.Result); err != nil {
		return 0, fmt.Errorf("adsmux: get handle for %q: %w", name, err)
	}
	if len(resp.Data) != 4 {
		return 0, fmt.Errorf("adsmux: get handle for %q: %w", name, ErrSymbolNotFound)
	}
	handle := uint32LE(resp.Data)
	c.symbolHandles.set(name, handle)
	return handle, nil
}

// ReadByName resolves name's handle (cache miss issues one extra
// frame) and reads length bytes by handle (§4.1 read_by_name, §8 S1).
func (c *Client) ReadByName(ctx context.Context, name string, length uint32) (*ams.ReadResponse, error) {
	handle, err := c.getOrCreateHandle(ctx, name)
	if err != nil {
		return nil, err
	}
	req := buildReadByHandleRequest(c.target, c.sender, handle, length)
	frame, err := c.Request(ctx, req)
	if err != nil {
		return nil, err
	}
	resp := &ams.ReadResponse{}
	if err := resp.Decode(ams.NewBuffer(frame)); err != nil {
		return nil, err
	}
	return resp, adsResultErr(resp.Result)
}

// WriteByName resolves name's handle and writes data by handle (§4.1
// write_by_name, §8 S2).
func (c *Client) WriteByName(ctx context.Context, name string, data []byte) (*ams.WriteResponse, error) {
	handle, err := c.getOrCreateHandle(ctx, name)
	if err != nil {
		return nil, err
	}
	req := buildWriteByHandleRequest(c.target, c.sender, handle, data)
	frame, err := c.Request(ctx, req)
	if err != nil {
		return nil, err
	}
	resp := &ams.WriteResponse{}
	if err := resp.Decode(ams.NewBuffer(frame)); err != nil {
		return nil, err
	}
	return resp, adsResultErr(resp.Result)
}

// ReleaseHandle issues RELEASE_SYMHANDLE for name's cached handle and
// drops it from the cache. Fails locally, without a network round
// trip, if nothing is cached (§7 "State" error kind).
func (c *Client) ReleaseHandle(ctx context.Context, name string) error {
	handle, ok := c.symbolHandles.get(name)
	if !ok {
		return fmt.Errorf("adsmux: release handle for %q: %w", name, ErrNoHandle)
	}
	req := buildReleaseHandleRequest(c.target, c.sender, handle)
	frame, err := c.Request(ctx, req)
	if err != nil {
		return err
	}
	resp := &ams.WriteResponse{}
	if err := resp.Decode(ams.NewBuffer(frame)); err != nil {
		return err
	}
	if err := adsResultErr(resp.Result); err != nil {
		return err
	}
	c.symbolHandles.delete(name)
	return nil
}

// sumupOrder snapshots a map's keys into one stable ordering, used
// consistently for both the handle-resolution pass and the
// request-assembly/response-splitting pass of a single sumup call.
// This resolves the map-iteration-order correlation hazard the design
// notes flag as an open question: ranging over a Go map twice gives no
// ordering guarantee at all, so each sumup call fixes its own order
// once and reuses it throughout.
func sumupOrder[V any](m map[string]V) []string {
	order := make([]string, 0, len(m))
	for name := range m {
		order = append(order, name)
	}
	sort.Strings(order)
	return order
}

// SumupReadByName batches reads for several names into one ReadWrite
// frame against the sumup index group (§4.1 sumup_read_by_name, §8 S6).
// Handles are resolved in a preparatory pass: cached handles are reused,
// missing ones are fetched individually (the protocol has no sumup for
// handle lookups, §4.4).
func (c *Client) SumupReadByName(ctx context.Context, lengths map[string]uint32) (map[string]*ams.ReadResponse, error) {
	order := sumupOrder(lengths)
	entries := make([]sumupReadEntry, len(order))
	for i, name := range order {
		handle, err := c.getOrCreateHandle(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("adsmux: sumup read: %w", err)
		}
		entries[i] = sumupReadEntry{handle: handle, length: lengths[name]}
	}

	req := buildSumupReadRequest(c.target, c.sender, entries)
	frame, err := c.Request(ctx, req)
	if err != nil {
		return nil, err
	}
	outer := &ams.ReadWriteResponse{}
	if err := outer.Decode(ams.NewBuffer(frame)); err != nil {
		return nil, err
	}
	if err := adsResultErr(outer.Result); err != nil {
		return nil, err
	}

	results := make(map[string]*ams.ReadResponse, len(order))
	buf := ams.NewBuffer(outer.Data)
	for _, name := range order {
		result := buf.ReadUint32()
		length := lengths[name]
		data := append([]byte(nil), buf.ReadN(int(length))...)
		if err := buf.Err(); err != nil {
			return nil, fmt.Errorf("adsmux: sumup read: decode %q: %w", name, err)
		}
		results[name] = &ams.ReadResponse{Result: result, Data: data}
	}
	return results, nil
}

// SumupWriteByName batches writes for several names into one ReadWrite
// frame against the sumup write index group (§4.1 sumup_write_by_name).
func (c *Client) SumupWriteByName(ctx context.Context, values map[string][]byte) (map[string]*ams.WriteResponse, error) {
	order := sumupOrder(values)
	entries := make([]sumupWriteEntry, len(order))
	for i, name := range order {
		handle, err := c.getOrCreateHandle(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("adsmux: sumup write: %w", err)
		}
		entries[i] = sumupWriteEntry{handle: handle, data: values[name]}
	}

	req := buildSumupWriteRequest(c.target, c.sender, entries)
	frame, err := c.Request(ctx, req)
	if err != nil {
		return nil, err
	}
	outer := &ams.ReadWriteResponse{}
	if err := outer.Decode(ams.NewBuffer(frame)); err != nil {
		return nil, err
	}
	if err := adsResultErr(outer.Result); err != nil {
		return nil, err
	}

	results := make(map[string]*ams.WriteResponse, len(order))
	buf := ams.NewBuffer(outer.Data)
	for _, name := range order {
		result := buf.ReadUint32()
		if err := buf.Err(); err != nil {
			return nil, fmt.Errorf("adsmux: sumup write: decode %q: %w", name, err)
		}
		results[name] = &ams.WriteResponse{Result: result}
	}
	return results, nil
}
