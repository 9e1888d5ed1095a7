// Package channel 定义插件消息频道标识符
//
// 频道标识符有两种形式：
//
//   - 新式（1.13+）：namespace:path，namespace 与 path 均为非空小写，
//     字符集 [a-z0-9_.-]
//   - 旧式（1.12.2 及更早）：任意非空、大小写敏感的字符串
//
// 两个标识符当且仅当规范形式（ID()）相同时相等。Identifier 是可比较的值类型，
// 可以直接作为 map 的键，并在多个 goroutine 之间共享。
//
// 使用示例:
//
//	modern, err := channel.FromKey("bungeecord", "main")
//	legacy := channel.MustLegacy("BungeeCord")
//	fmt.Println(modern.ID(), legacy.ID()) // bungeecord:main BungeeCord
package channel
