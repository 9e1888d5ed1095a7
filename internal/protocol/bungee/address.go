package bungee

import (
	"net"
	"strconv"
)

// hostPort 拆分地址为应答中使用的主机与端口
//
// 非 IP 传输返回 "unix://<path>" 与端口 0。
func hostPort(addr net.Addr) (string, int) {
	switch a := addr.(type) {
	case nil:
		return "", 0
	case *net.TCPAddr:
		return a.IP.String(), a.Port
	case *net.UDPAddr:
		return a.IP.String(), a.Port
	case *net.UnixAddr:
		return "unix://" + a.Name, 0
	}
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "unix://" + addr.String(), 0
	}
	p, _ := strconv.Atoi(port)
	return host, p
}
