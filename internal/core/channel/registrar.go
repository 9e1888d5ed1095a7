package channel

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	ch "github.com/chanbridge/go-chanbridge/pkg/channel"
	pkgif "github.com/chanbridge/go-chanbridge/pkg/interfaces"
	"github.com/chanbridge/go-chanbridge/pkg/lib/log"
	"github.com/chanbridge/go-chanbridge/pkg/types"
)

var logger = log.Logger("core/channel")

// snapshot 已注册频道的不可变快照
type snapshot struct {
	ids map[ch.Identifier]struct{}
}

var emptySnapshot = &snapshot{ids: map[ch.Identifier]struct{}{}}

// Registrar 频道注册表
type Registrar struct {
	mu    sync.Mutex // 串行化写操作
	state atomic.Pointer[snapshot]

	remaps    remapTable
	threshold types.ProtocolVersion

	bus       pkgif.EventBus
	emitReg   pkgif.Emitter
	emitUnreg pkgif.Emitter
}

var _ pkgif.ChannelRegistrar = (*Registrar)(nil)

// Option 注册表选项
type Option func(*Registrar) error

// WithRemap 追加一条旧式名称重映射
func WithRemap(legacy, modern string) Option {
	return func(r *Registrar) error {
		return r.remaps.add(legacy, modern)
	}
}

// WithRemaps 批量追加旧式名称重映射
func WithRemaps(m map[string]string) Option {
	return func(r *Registrar) error {
		for legacy, modern := range m {
			if err := r.remaps.add(legacy, modern); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithModernThreshold 设置使用新式视图的最低协议版本
func WithModernThreshold(v types.ProtocolVersion) Option {
	return func(r *Registrar) error {
		r.threshold = v
		return nil
	}
}

// WithEventBus 在注册集合变化时发射事件
func WithEventBus(bus pkgif.EventBus) Option {
	return func(r *Registrar) error {
		r.bus = bus
		return nil
	}
}

// NewRegistrar 创建频道注册表
func NewRegistrar(opts ...Option) (*Registrar, error) {
	r := &Registrar{
		remaps:    remapTable(DefaultRemaps()),
		threshold: types.ModernChannelThreshold,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	if r.bus != nil {
		var err error
		if r.emitReg, err = r.bus.Emitter(new(types.EvtChannelsRegistered)); err != nil {
			return nil, fmt.Errorf("channel: create emitter: %w", err)
		}
		if r.emitUnreg, err = r.bus.Emitter(new(types.EvtChannelsUnregistered)); err != nil {
			return nil, fmt.Errorf("channel: create emitter: %w", err)
		}
	}
	r.state.Store(emptySnapshot)
	return r, nil
}

func (r *Registrar) load() *snapshot {
	return r.state.Load()
}

func checkIdentifiers(ids []ch.Identifier) error {
	if len(ids) == 0 {
		return ErrEmptyIdentifiers
	}
	for _, id := range ids {
		if !id.IsValid() {
			return fmt.Errorf("%w: zero-value identifier", ch.ErrInvalidIdentifier)
		}
	}
	return nil
}

// mutate 在写锁下复制当前快照，应用 fn 并发布新快照，返回发生变化的标识符
func (r *Registrar) mutate(fn func(m map[ch.Identifier]struct{}) []ch.Identifier) []ch.Identifier {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.load()
	next := make(map[ch.Identifier]struct{}, len(cur.ids)+1)
	for id := range cur.ids {
		next[id] = struct{}{}
	}
	changed := fn(next)
	if len(changed) > 0 {
		r.state.Store(&snapshot{ids: next})
	}
	return changed
}

// Register 注册一个或多个频道
//
// 任一标识符无效时整批拒绝，不修改状态。重复注册为空操作。
func (r *Registrar) Register(ids ...ch.Identifier) error {
	if err := checkIdentifiers(ids); err != nil {
		return err
	}

	added := r.mutate(func(m map[ch.Identifier]struct{}) []ch.Identifier {
		var added []ch.Identifier
		for _, id := range ids {
			if _, ok := m[id]; !ok {
				m[id] = struct{}{}
				added = append(added, id)
			}
		}
		return added
	})

	if len(added) > 0 {
		logger.Debug("频道已注册", "ids", idStrings(added))
		if r.emitReg != nil {
			_ = r.emitReg.Emit(types.EvtChannelsRegistered{
				BaseEvent: types.NewBaseEvent(types.EventChannelsRegistered),
				IDs:       idStrings(added),
			})
		}
	}
	return nil
}

// Unregister 注销一个或多个频道，注销未注册的频道为空操作
func (r *Registrar) Unregister(ids ...ch.Identifier) error {
	if err := checkIdentifiers(ids); err != nil {
		return err
	}

	removed := r.mutate(func(m map[ch.Identifier]struct{}) []ch.Identifier {
		var removed []ch.Identifier
		for _, id := range ids {
			if _, ok := m[id]; ok {
				delete(m, id)
				removed = append(removed, id)
			}
		}
		return removed
	})

	if len(removed) > 0 {
		logger.Debug("频道已注销", "ids", idStrings(removed))
		if r.emitUnreg != nil {
			_ = r.emitUnreg.Emit(types.EvtChannelsUnregistered{
				BaseEvent: types.NewBaseEvent(types.EventChannelsUnregistered),
				IDs:       idStrings(removed),
			})
		}
	}
	return nil
}

// IsRegistered 检查频道是否已注册
func (r *Registrar) IsRegistered(id ch.Identifier) bool {
	_, ok := r.load().ids[id]
	return ok
}

// Len 返回已注册频道数
func (r *Registrar) Len() int {
	return len(r.load().ids)
}

// Identifiers 返回已注册频道，按规范形式排序
func (r *Registrar) Identifiers() []ch.Identifier {
	snap := r.load()
	out := make([]ch.Identifier, 0, len(snap.ids))
	for id := range snap.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ID() != out[j].ID() {
			return out[i].ID() < out[j].ID()
		}
		return out[i].Kind() < out[j].Kind()
	})
	return out
}

// modernID 标识符在新式视图中的投影
func (r *Registrar) modernID(id ch.Identifier) string {
	if id.IsModern() {
		return id.ID()
	}
	return r.remaps.modernFor(id.Name())
}

// ModernChannelSet 返回新式视图集合
func (r *Registrar) ModernChannelSet() map[string]struct{} {
	snap := r.load()
	out := make(map[string]struct{}, len(snap.ids))
	for id := range snap.ids {
		out[r.modernID(id)] = struct{}{}
	}
	return out
}

// LegacyChannelSet 返回旧式视图集合
func (r *Registrar) LegacyChannelSet() map[string]struct{} {
	snap := r.load()
	out := make(map[string]struct{}, len(snap.ids))
	for id := range snap.ids {
		out[id.ID()] = struct{}{}
	}
	return out
}

// ModernChannelIDs 返回新式视图，已排序
func (r *Registrar) ModernChannelIDs() []string {
	return sortedKeys(r.ModernChannelSet())
}

// LegacyChannelIDs 返回旧式视图，已排序
func (r *Registrar) LegacyChannelIDs() []string {
	return sortedKeys(r.LegacyChannelSet())
}

// UsesModernChannels 协议版本是否使用新式视图
func (r *Registrar) UsesModernChannels(v types.ProtocolVersion) bool {
	return v.AtLeast(r.threshold)
}

// ChannelsForProtocol 按协议版本返回对应视图
func (r *Registrar) ChannelsForProtocol(v types.ProtocolVersion) []string {
	if r.UsesModernChannels(v) {
		return r.ModernChannelIDs()
	}
	return r.LegacyChannelIDs()
}

// ChannelIDForProtocol 返回单个频道在指定协议版本下的线上名称
//
// 标识符不要求已注册。
func (r *Registrar) ChannelIDForProtocol(id ch.Identifier, v types.ProtocolVersion) string {
	if r.UsesModernChannels(v) {
		return r.modernID(id)
	}
	return id.ID()
}

// FromID 按任一视图中的线上名称查找已注册的频道
func (r *Registrar) FromID(raw string) (ch.Identifier, bool) {
	for id := range r.load().ids {
		if id.ID() == raw || r.modernID(id) == raw {
			return id, true
		}
	}
	return ch.Identifier{}, false
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func idStrings(ids []ch.Identifier) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.ID()
	}
	return out
}
