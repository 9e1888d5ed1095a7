// Package lib 包含基础设施工具库
//
// 本目录包含与架构组件无关的通用工具库：
//
//   - log: 组件日志入口（懒加载子系统 logger）
//
// # 与 pkg/ 其他目录的关系
//
//   - interfaces/: 组件公共接口
//   - types/: 公共类型定义
//   - channel/, channelids/: 频道标识符与内置频道
//   - lib/: 基础设施工具库（本目录）
package lib
