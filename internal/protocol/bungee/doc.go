// Package bungee 实现 BungeeCord 兼容插件通道
//
// 后端服务器通过 bungeecord:main（1.13+）或 BungeeCord（旧版本）通道
// 向代理发送子命令。每条消息以子命令名开头，后跟按子命令固定的字段：
//
//	UTF 字符串   16 位大端字节长度 + UTF-8 字节
//	short / int  16 / 32 位大端整数
//	剩余字节     到负载末尾的全部字节，原样拷贝
//
// # 子命令
//
//	Connect          server                 切换来源玩家到 server，无应答
//	ConnectOther     player, server         切换指定玩家，无应答
//	IP               -                      IP, host, int port
//	IPOther          player                 IPOther, player, host, int port
//	ServerIP         server                 ServerIP, server, host, short port
//	PlayerCount      ALL | server           PlayerCount, target, int count
//	PlayerList       ALL | server           PlayerList, target, "a, b, c"
//	GetServers       -                      GetServers, "lobby, survival"
//	GetServer        -                      GetServer, 当前服务器名
//	UUID             -                      UUID, 无连字符 UUID
//	UUIDOther        player                 UUIDOther, player, 无连字符 UUID
//	Message          ALL | player, 旧式文本  无应答
//	MessageRaw       ALL | player, JSON 文本 无应答
//	KickPlayer       player, 旧式文本        无应答
//	Forward          ALL | ONLINE | server, 剩余字节
//	ForwardToPlayer  player, 剩余字节
//
// 目标不存在时静默忽略；未知子命令被消费但不处理；负载损坏时记录日志后丢弃，
// 在任何副作用发生之前完成全部字段解码。
//
// 应答与转发使用的通道名由目标连接的协议版本决定。
package bungee
