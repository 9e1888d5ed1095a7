package bungee

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Reader 按 BungeeCord 线格式顺序读取字段
//
// 字符串为 16 位大端字节长度加 UTF-8 字节，整数为大端定长。
type Reader struct {
	data []byte
	off  int
}

// NewReader 创建 Reader
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

func (r *Reader) need(n int) error {
	if len(r.data)-r.off < n {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrMalformedPayload, n, r.off, len(r.data)-r.off)
	}
	return nil
}

// ReadUTF 读取一个长度前缀字符串
func (r *Reader) ReadUTF() (string, error) {
	if err := r.need(2); err != nil {
		return "", err
	}
	n := int(binary.BigEndian.Uint16(r.data[r.off:]))
	r.off += 2
	if err := r.need(n); err != nil {
		return "", err
	}
	s := string(r.data[r.off : r.off+n])
	r.off += n
	return s, nil
}

// ReadShort 读取 16 位有符号整数
func (r *Reader) ReadShort() (int16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := int16(binary.BigEndian.Uint16(r.data[r.off:]))
	r.off += 2
	return v, nil
}

// ReadInt 读取 32 位有符号整数
func (r *Reader) ReadInt() (int32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := int32(binary.BigEndian.Uint32(r.data[r.off:]))
	r.off += 4
	return v, nil
}

// Remaining 读取剩余全部字节（拷贝）
func (r *Reader) Remaining() []byte {
	out := make([]byte, len(r.data)-r.off)
	copy(out, r.data[r.off:])
	r.off = len(r.data)
	return out
}

// Len 返回未读字节数
func (r *Reader) Len() int {
	return len(r.data) - r.off
}

// Writer 按 BungeeCord 线格式顺序写入字段
type Writer struct {
	buf bytes.Buffer
}

// NewWriter 创建 Writer
func NewWriter() *Writer {
	return &Writer{}
}

// WriteUTF 写入一个长度前缀字符串
func (w *Writer) WriteUTF(s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(s))
	}
	var n [2]byte
	binary.BigEndian.PutUint16(n[:], uint16(len(s)))
	w.buf.Write(n[:])
	w.buf.WriteString(s)
	return nil
}

// WriteShort 写入 16 位整数
func (w *Writer) WriteShort(v int16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(v))
	w.buf.Write(b[:])
}

// WriteInt 写入 32 位整数
func (w *Writer) WriteInt(v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	w.buf.Write(b[:])
}

// WriteRaw 原样写入字节
func (w *Writer) WriteRaw(b []byte) {
	w.buf.Write(b)
}

// Bytes 返回已写入的字节
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}
