package builtins

import (
	"net"

	"github.com/rufflang/ruff/internal/evaluator"
	"github.com/rufflang/ruff/internal/runtime"
)

// registerNet installs the TCP/UDP category named in spec.md
// §4.6/Glossary on stdlib net — these are the same resource-handle
// shapes (TcpListenerValue/TcpStreamValue/UdpSocketValue) internal/
// cleanup already knows how to close, so the natives here only need to
// construct them.
func registerNet() {
	evaluator.RegisterNative("tcp_listen", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("tcp_listen", 1, len(args))
		}
		addr, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("tcp_listen", "string", args[0])
		}
		ln, err := net.Listen("tcp", addr.Value)
		if err != nil {
			return &runtime.ErrorValue{Message: "tcp_listen: " + err.Error()}
		}
		return &runtime.TcpListenerValue{Listener: ln, Addr: ln.Addr().String()}
	})

	evaluator.RegisterNative("tcp_accept", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("tcp_accept", 1, len(args))
		}
		l, ok := args[0].(*runtime.TcpListenerValue)
		if !ok {
			return typeError("tcp_accept", "TcpListener", args[0])
		}
		conn, err := l.Listener.Accept()
		if err != nil {
			return &runtime.ErrorValue{Message: "tcp_accept: " + err.Error()}
		}
		return &runtime.TcpStreamValue{Conn: conn, PeerAddr: conn.RemoteAddr().String()}
	})

	evaluator.RegisterNative("tcp_connect", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("tcp_connect", 1, len(args))
		}
		addr, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("tcp_connect", "string", args[0])
		}
		conn, err := net.Dial("tcp", addr.Value)
		if err != nil {
			return &runtime.ErrorValue{Message: "tcp_connect: " + err.Error()}
		}
		return &runtime.TcpStreamValue{Conn: conn, PeerAddr: conn.RemoteAddr().String()}
	})

	evaluator.RegisterNative("tcp_send", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("tcp_send", 2, len(args))
		}
		stream, ok1 := args[0].(*runtime.TcpStreamValue)
		data, ok2 := args[1].(*runtime.StringValue)
		if !ok1 || !ok2 {
			return typeError("tcp_send", "TcpStream, string", args[0])
		}
		n, err := stream.Conn.Write([]byte(data.Value))
		if err != nil {
			return &runtime.ErrorValue{Message: "tcp_send: " + err.Error()}
		}
		return &runtime.IntValue{Value: int64(n)}
	})

	evaluator.RegisterNative("tcp_receive", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("tcp_receive", 2, len(args))
		}
		stream, ok1 := args[0].(*runtime.TcpStreamValue)
		maxBytes, ok2 := args[1].(*runtime.IntValue)
		if !ok1 || !ok2 {
			return typeError("tcp_receive", "TcpStream, int", args[0])
		}
		buf := make([]byte, maxBytes.Value)
		n, err := stream.Conn.Read(buf)
		if err != nil {
			return &runtime.ErrorValue{Message: "tcp_receive: " + err.Error()}
		}
		return runtime.Str(string(buf[:n]))
	})

	evaluator.RegisterNative("tcp_close", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("tcp_close", 1, len(args))
		}
		switch v := args[0].(type) {
		case *runtime.TcpStreamValue:
			v.Conn.Close()
		case *runtime.TcpListenerValue:
			v.Listener.Close()
		default:
			return typeError("tcp_close", "TcpStream or TcpListener", args[0])
		}
		return runtime.Null
	})

	evaluator.RegisterNative("udp_socket", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("udp_socket", 1, len(args))
		}
		addr, ok := args[0].(*runtime.StringValue)
		if !ok {
			return typeError("udp_socket", "string", args[0])
		}
		conn, err := net.ListenPacket("udp", addr.Value)
		if err != nil {
			return &runtime.ErrorValue{Message: "udp_socket: " + err.Error()}
		}
		return &runtime.UdpSocketValue{Conn: conn, Addr: conn.LocalAddr().String()}
	})

	evaluator.RegisterNative("udp_send", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 3 {
			return arityError("udp_send", 3, len(args))
		}
		sock, ok1 := args[0].(*runtime.UdpSocketValue)
		addr, ok2 := args[1].(*runtime.StringValue)
		data, ok3 := args[2].(*runtime.StringValue)
		if !ok1 || !ok2 || !ok3 {
			return typeError("udp_send", "UdpSocket, string, string", args[0])
		}
		raddr, err := net.ResolveUDPAddr("udp", addr.Value)
		if err != nil {
			return &runtime.ErrorValue{Message: "udp_send: " + err.Error()}
		}
		n, err := sock.Conn.WriteTo([]byte(data.Value), raddr)
		if err != nil {
			return &runtime.ErrorValue{Message: "udp_send: " + err.Error()}
		}
		return &runtime.IntValue{Value: int64(n)}
	})

	evaluator.RegisterNative("udp_receive", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 2 {
			return arityError("udp_receive", 2, len(args))
		}
		sock, ok1 := args[0].(*runtime.UdpSocketValue)
		maxBytes, ok2 := args[1].(*runtime.IntValue)
		if !ok1 || !ok2 {
			return typeError("udp_receive", "UdpSocket, int", args[0])
		}
		buf := make([]byte, maxBytes.Value)
		n, addr, err := sock.Conn.ReadFrom(buf)
		if err != nil {
			return &runtime.ErrorValue{Message: "udp_receive: " + err.Error()}
		}
		out := runtime.NewDict()
		out.Set("data", runtime.Str(string(buf[:n])))
		out.Set("from", runtime.Str(addr.String()))
		return out
	})

	evaluator.RegisterNative("udp_close", func(ev *evaluator.Evaluator, args []runtime.Value) runtime.Value {
		if len(args) != 1 {
			return arityError("udp_close", 1, len(args))
		}
		sock, ok := args[0].(*runtime.UdpSocketValue)
		if !ok {
			return typeError("udp_close", "UdpSocket", args[0])
		}
		sock.Conn.Close()
		return runtime.Null
	})
}
