// Package mocks 提供统一的测试 Mock 实现
//
// 代理目录相关接口（pkg/interfaces/proxy.go）的测试双，供各包测试共用。
//
// # Mock 列表
//
//   - MockDirectory: 模拟 interfaces.Directory，按名称查找玩家与服务器
//   - MockPlayer: 模拟 interfaces.Player，记录收到的消息、断开原因与切服请求
//   - MockServer / MockServerInfo: 模拟 interfaces.RegisteredServer / ServerInfo
//   - MockServerConnection: 模拟 interfaces.ServerConnection
//   - MockConn: 模拟 interfaces.Conn，记录写入的插件消息
//   - MockConnectionRequest: 模拟 interfaces.ConnectionRequest
//
// # 设计原则
//
// 1. 函数式注入: 通过 XxxFunc 字段注入自定义行为
// 2. 调用记录: 写入、消息、断开、切服都会记录，便于断言
// 3. 并发安全: 记录字段由互斥锁保护，异步切服请求也可以安全断言
//
// # 使用示例
//
//	dir := mocks.NewMockDirectory()
//	lobby := dir.AddServer("lobby", &net.TCPAddr{IP: net.IPv4(10, 0, 0, 1), Port: 25565})
//	alice := dir.AddPlayer("alice")
//	origin := dir.Join(alice, lobby, types.Minecraft_1_13)
//
//	responder.Process(origin, msg)
//	written := origin.ConnValue.Messages()
package mocks
