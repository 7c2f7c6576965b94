// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

package network

import (
	"net"
	"testing"
	"time"

	"github.com/aura-project/w3ghost/protocol"
	"github.com/aura-project/w3ghost/protocol/w3gs"
)

func TestConnSendWritesSerializedPacket(t *testing.T) {
	var server, client = net.Pipe()
	defer client.Close()

	var enc w3gs.Encoding
	var conn = NewW3GSConn(server, enc)
	defer conn.Close()

	var done = make(chan error, 1)
	go func() {
		done <- conn.Send(&w3gs.PongToHost{EchoedTicks: 99})
	}()

	var raw = make([]byte, 64)
	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, err := client.Read(raw)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("Send: %v", err)
	}

	var inbound = protocol.Buffer{Bytes: raw[:n]}
	pkt, err := w3gs.DeserializePacket(&inbound, &enc, w3gs.DefaultFactory)
	if err != nil {
		t.Fatalf("DeserializePacket: %v", err)
	}
	var pong, ok = pkt.(*w3gs.PongToHost)
	if !ok || pong.EchoedTicks != 99 {
		t.Fatalf("got %#v", pkt)
	}
}

func TestConnReadAvailableReturnsBufferedData(t *testing.T) {
	var ln, err = net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	var dial, dialErr = net.Dial("tcp4", ln.Addr().String())
	if dialErr != nil {
		t.Fatalf("dial: %v", dialErr)
	}
	defer dial.Close()

	var accepted, acceptErr = ln.Accept()
	if acceptErr != nil {
		t.Fatalf("accept: %v", acceptErr)
	}
	defer accepted.Close()

	if _, err := dial.Write([]byte("hello")); err != nil {
		t.Fatalf("write: %v", err)
	}
	// Give the kernel a moment to land the bytes in accepted's receive
	// buffer so ReadAvailable's already-expired deadline still sees them.
	time.Sleep(20 * time.Millisecond)

	var conn = NewW3GSConn(accepted, w3gs.Encoding{})
	data, err := conn.ReadAvailable()
	if err != nil {
		t.Fatalf("ReadAvailable: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("ReadAvailable = %q, want %q", data, "hello")
	}
}

func TestConnReadAvailableNoDataReturnsEmpty(t *testing.T) {
	var ln, err = net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	var dial, dialErr = net.Dial("tcp4", ln.Addr().String())
	if dialErr != nil {
		t.Fatalf("dial: %v", dialErr)
	}
	defer dial.Close()

	var accepted, acceptErr = ln.Accept()
	if acceptErr != nil {
		t.Fatalf("accept: %v", acceptErr)
	}
	defer accepted.Close()

	var conn = NewW3GSConn(accepted, w3gs.Encoding{})
	data, err := conn.ReadAvailable()
	if err != nil {
		t.Fatalf("ReadAvailable: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected no data, got %q", data)
	}
}

func TestConnCloseIsIdempotentAndReadAvailableErrors(t *testing.T) {
	var server, client = net.Pipe()
	defer client.Close()

	var conn = NewW3GSConn(server, w3gs.Encoding{})
	if err := conn.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	if _, err := conn.ReadAvailable(); err != ErrConnClosed {
		t.Fatalf("ReadAvailable after Close = %v, want ErrConnClosed", err)
	}
}

func TestConnRemoteIPFromTCPAddr(t *testing.T) {
	var ln, err = net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	var dial, dialErr = net.Dial("tcp4", ln.Addr().String())
	if dialErr != nil {
		t.Fatalf("dial: %v", dialErr)
	}
	defer dial.Close()

	var accepted, acceptErr = ln.Accept()
	if acceptErr != nil {
		t.Fatalf("accept: %v", acceptErr)
	}
	defer accepted.Close()

	var conn = NewW3GSConn(accepted, w3gs.Encoding{})
	var ip = conn.RemoteIP()
	if ip == nil || !ip.IsLoopback() {
		t.Fatalf("RemoteIP() = %v, want loopback", ip)
	}
}
