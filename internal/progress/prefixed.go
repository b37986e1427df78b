package progress

// Prefixed namespaces every key of kv with prefix, so several players can
// share one store.
func Prefixed(kv KeyValue, prefix string) KeyValue {
	return prefixedKV{kv: kv, prefix: prefix + ":"}
}

type prefixedKV struct {
	kv     KeyValue
	prefix string
}

func (p prefixedKV) LoadItem(key string) ([]byte, error) {
	return p.kv.LoadItem(p.prefix + key)
}

func (p prefixedKV) SaveItem(key string, data []byte) error {
	return p.kv.SaveItem(p.prefix+key, data)
}
