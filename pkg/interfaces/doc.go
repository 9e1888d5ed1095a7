// Package interfaces 定义 chanbridge 的公共接口
//
// 一个接口文件对应一个实现目录或一个外部协作者：
//
//   - channel.go   - 频道注册表（internal/core/channel）
//   - proxy.go     - 代理目录：玩家、后端服务器、连接（由宿主代理实现）
//   - eventbus.go  - 事件总线（internal/core/eventbus）
//
// 代理目录中的接口只描述 chanbridge 需要的最小能力，宿主代理在接入时
// 用自己的玩家/服务器对象实现它们即可。
package interfaces
