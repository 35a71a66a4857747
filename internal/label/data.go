package label

// Maps holds the label associations of one document. It is built once by
// Build and only read afterwards.
//
// ByWrap is keyed by WrapKey, an approximate fingerprint (tag, id, name and
// the first two class tokens). Two distinct controls that share those
// values share a key and the later label wins.
type Maps struct {
	ByID   map[string]string
	ByWrap map[string]string
}
