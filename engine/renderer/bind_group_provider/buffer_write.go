package bind_group_provider

// BufferWrite is one staged upload into a provider-owned GPU buffer: the
// destination binding, the byte offset within that buffer, and the bytes to
// write there.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}
