package server

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/hsdfat8/diam-peer/codec"
	"github.com/hsdfat8/diam-peer/dict"
	"github.com/hsdfat8/diam-peer/pkg/connection"
	"github.com/hsdfat8/diam-peer/pkg/logger"
)

func newTestCodec(t *testing.T) *codec.DictionaryCodec {
	t.Helper()
	d, err := dict.Default()
	if err != nil {
		t.Fatalf("loading base dictionary: %v", err)
	}
	return codec.NewDictionaryCodec(d)
}

func encodeWire(t *testing.T, cdc *codec.DictionaryCodec, msg *codec.Message) []byte {
	t.Helper()
	body, err := cdc.EncodeAVPs(msg.AVPs)
	if err != nil {
		t.Fatalf("encoding request: %v", err)
	}
	msg.Header.MessageLength = uint32(connection.HeaderLength + len(body))
	return append(msg.Header.Serialize(), body...)
}

func readAnswer(t *testing.T, cdc *codec.DictionaryCodec, r io.Reader) *codec.Message {
	t.Helper()
	frame, err := connection.ReadMessage(r)
	if err != nil {
		t.Fatalf("reading answer: %v", err)
	}
	avps, err := cdc.DecodeAVPs(frame.Body)
	if err != nil {
		t.Fatalf("decoding answer body: %v", err)
	}
	return &codec.Message{Header: frame.Header, AVPs: avps}
}

// startWorker serves the given transport on a background goroutine and
// returns the peer side plus a channel closed when Serve returns.
func startWorker(t *testing.T, cdc *codec.DictionaryCodec) (net.Conn, chan struct{}) {
	t.Helper()
	serverSide, clientSide := net.Pipe()

	c := NewConnection(serverSide, DefaultConnectionConfig(), cdc, BaseMux(), logger.New("test", "error"))
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Serve()
	}()

	t.Cleanup(func() {
		clientSide.Close()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("worker did not stop")
		}
	})
	return clientSide, done
}

func TestConnectionCapabilitiesExchange(t *testing.T) {
	cdc := newTestCodec(t)
	client, _ := startWorker(t, cdc)

	req := newTestCER()
	if _, err := client.Write(encodeWire(t, cdc, req)); err != nil {
		t.Fatalf("writing request: %v", err)
	}

	answer := readAnswer(t, cdc, client)
	if answer.Header.CommandCode != CommandCapabilitiesExchange {
		t.Errorf("answer command = %d, want %d", answer.Header.CommandCode, CommandCapabilitiesExchange)
	}
	if answer.Header.Flags.Request {
		t.Error("answer has request flag set")
	}
	if answer.Header.HopByHopID != req.Header.HopByHopID {
		t.Errorf("hop-by-hop = %#x, want %#x", answer.Header.HopByHopID, req.Header.HopByHopID)
	}
	if answer.Header.EndToEndID != req.Header.EndToEndID {
		t.Errorf("end-to-end = %#x, want %#x", answer.Header.EndToEndID, req.Header.EndToEndID)
	}
	if rc := resultCodeOf(t, answer); rc != ResultCodeSuccess {
		t.Errorf("Result-Code = %d, want %d", rc, ResultCodeSuccess)
	}
	got := answer.FindAVP(avpOriginHost)
	if got == nil || string(got.Data.Serialize()) != "peerA" {
		t.Errorf("Origin-Host echo = %v, want peerA", got)
	}
}

func TestConnectionSurvivesHandlerFailure(t *testing.T) {
	cdc := newTestCodec(t)
	client, _ := startWorker(t, cdc)

	// A capabilities exchange without Origin-Host cannot be answered
	// positively; the worker must fall back to the generic failure and
	// keep serving.
	bad := newTestCER()
	var kept []*codec.AVP
	for _, a := range bad.AVPs {
		if a.Code != avpOriginHost {
			kept = append(kept, a)
		}
	}
	bad.AVPs = kept

	if _, err := client.Write(encodeWire(t, cdc, bad)); err != nil {
		t.Fatalf("writing request: %v", err)
	}
	answer := readAnswer(t, cdc, client)
	if rc := resultCodeOf(t, answer); rc != ResultCodeUnableToComply {
		t.Errorf("Result-Code = %d, want %d", rc, ResultCodeUnableToComply)
	}
	if len(answer.AVPs) != 1 {
		t.Errorf("failure answer carries %d attributes, want 1", len(answer.AVPs))
	}
	if answer.Header.HopByHopID != bad.Header.HopByHopID {
		t.Error("failure answer lost hop-by-hop correlation")
	}

	// The same connection must still answer a watchdog.
	dwr := &codec.Message{
		Header: &connection.Header{
			Version:     1,
			Flags:       connection.Flags{Request: true},
			CommandCode: CommandDeviceWatchdog,
			HopByHopID:  42,
			EndToEndID:  43,
		},
	}
	if _, err := client.Write(encodeWire(t, cdc, dwr)); err != nil {
		t.Fatalf("writing watchdog: %v", err)
	}
	dwa := readAnswer(t, cdc, client)
	if rc := resultCodeOf(t, dwa); rc != ResultCodeSuccess {
		t.Errorf("watchdog Result-Code = %d, want %d", rc, ResultCodeSuccess)
	}
}

func TestConnectionDisconnectPeer(t *testing.T) {
	cdc := newTestCodec(t)
	client, done := startWorker(t, cdc)

	dpr := &codec.Message{
		Header: &connection.Header{
			Version:     1,
			Flags:       connection.Flags{Request: true},
			CommandCode: CommandDisconnectPeer,
			HopByHopID:  5,
			EndToEndID:  6,
		},
	}
	if _, err := client.Write(encodeWire(t, cdc, dpr)); err != nil {
		t.Fatalf("writing disconnect: %v", err)
	}

	dpa := readAnswer(t, cdc, client)
	if rc := resultCodeOf(t, dpa); rc != ResultCodeSuccess {
		t.Errorf("Result-Code = %d, want %d", rc, ResultCodeSuccess)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker still running after disconnect answer")
	}

	buf := make([]byte, 1)
	if _, err := client.Read(buf); err == nil {
		t.Error("expected closed connection after disconnect answer")
	}
}

func TestConnectionCleanPeerClose(t *testing.T) {
	cdc := newTestCodec(t)
	client, done := startWorker(t, cdc)

	client.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after peer close")
	}
}

func TestConnectionRejectsOversizedFrame(t *testing.T) {
	cdc := newTestCodec(t)
	serverSide, client := net.Pipe()
	cfg := DefaultConnectionConfig()
	cfg.MaxMessageSize = 64

	c := NewConnection(serverSide, cfg, cdc, BaseMux(), logger.New("test", "error"))
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Serve()
	}()
	defer client.Close()

	req := newTestCER()
	wire := encodeWire(t, cdc, req)
	// The worker drops the connection after reading the header, so the
	// body write may observe the close mid-way.
	client.Write(wire)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not drop oversized frame")
	}
}
