package document

import (
	"github.com/spaolacci/murmur3"
)

// Fingerprint returns a 64-bit murmur3 hash of the canonical YAML form.
// Documents that are Equal have the same fingerprint regardless of the
// comments or formatting of their source files.
func (d *Document) Fingerprint() uint64 {
	out, err := d.Marshal()
	if err != nil {
		return 0
	}
	return murmur3.Sum64(out)
}
