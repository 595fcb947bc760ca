package builtins

import (
	"testing"

	"github.com/rufflang/ruff/internal/runtime"
)

func TestTcpListenConnectSendReceive(t *testing.T) {
	ev := setup(t)
	ln := call(t, ev, "tcp_listen", runtime.Str("127.0.0.1:0"))
	listener, ok := ln.(*runtime.TcpListenerValue)
	if !ok {
		t.Fatalf("got %v, want TcpListenerValue", ln)
	}
	defer call(t, ev, "tcp_close", listener)

	addr := listener.Addr
	accepted := make(chan runtime.Value, 1)
	go func() { accepted <- call(t, ev, "tcp_accept", listener) }()

	client := call(t, ev, "tcp_connect", runtime.Str(addr))
	clientStream, ok := client.(*runtime.TcpStreamValue)
	if !ok {
		t.Fatalf("got %v, want TcpStreamValue", client)
	}
	defer call(t, ev, "tcp_close", clientStream)

	serverSide := <-accepted
	serverStream, ok := serverSide.(*runtime.TcpStreamValue)
	if !ok {
		t.Fatalf("got %v, want TcpStreamValue", serverSide)
	}
	defer call(t, ev, "tcp_close", serverStream)

	sent := call(t, ev, "tcp_send", clientStream, runtime.Str("ping"))
	wantInt(t, sent, 4)

	received := call(t, ev, "tcp_receive", serverStream, &runtime.IntValue{Value: 64})
	wantString(t, received, "ping")
}

func TestUdpSocketSendReceive(t *testing.T) {
	ev := setup(t)
	serverSock := call(t, ev, "udp_socket", runtime.Str("127.0.0.1:0"))
	server, ok := serverSock.(*runtime.UdpSocketValue)
	if !ok {
		t.Fatalf("got %v, want UdpSocketValue", serverSock)
	}
	defer call(t, ev, "udp_close", server)

	clientSock := call(t, ev, "udp_socket", runtime.Str("127.0.0.1:0"))
	client, ok := clientSock.(*runtime.UdpSocketValue)
	if !ok {
		t.Fatalf("got %v, want UdpSocketValue", clientSock)
	}
	defer call(t, ev, "udp_close", client)

	sent := call(t, ev, "udp_send", client, runtime.Str(server.Addr), runtime.Str("hi"))
	wantInt(t, sent, 2)

	received := call(t, ev, "udp_receive", server, &runtime.IntValue{Value: 64})
	d, ok := received.(*runtime.DictValue)
	if !ok {
		t.Fatalf("got %v, want dict", received)
	}
	data, _ := d.Get("data")
	wantString(t, data, "hi")
}
