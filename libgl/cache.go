package libgl

import (
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pierrec/lz4/v4"
)

// CacheMaxAge bounds how long a program binary is trusted. Drivers may
// update and generate different code in the meantime.
const CacheMaxAge = 30 * 24 * time.Hour

// BinaryCache stores linked program binaries on disk. Entries are keyed by
// the shader sources and the driver that produced them. Each file holds the
// little endian binary format followed by the lz4 compressed binary.
type BinaryCache struct {
	dir    string
	driver string
	maxAge time.Duration
	now    func() time.Time
}

// NewBinaryCache returns a cache in dir for programs built by the given
// driver; see Env.DriverId.
func NewBinaryCache(dir, driver string) *BinaryCache {
	return &BinaryCache{
		dir:    dir,
		driver: driver,
		maxAge: CacheMaxAge,
		now:    time.Now,
	}
}

func (cache *BinaryCache) Key(sources ...string) string {
	hasher := md5.New()
	for _, src := range sources {
		hasher.Write([]byte(src))
		hasher.Write([]byte{0})
	}
	hasher.Write([]byte(cache.driver))
	return fmt.Sprintf("%x", hasher.Sum(nil))
}

func (cache *BinaryCache) path(key string) string {
	return filepath.Join(cache.dir, key+".bin")
}

func (cache *BinaryCache) Put(key string, format uint32, data []byte) error {
	if err := os.MkdirAll(cache.dir, 0o755); err != nil {
		return fmt.Errorf("create shader cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(cache.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := binary.Write(tmp, binary.LittleEndian, format); err != nil {
		tmp.Close()
		return err
	}
	zw := lz4.NewWriter(tmp)
	if _, err := zw.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), cache.path(key))
}

// Get returns the stored binary. Misses, expired and unreadable entries
// all report ok == false; the latter two are removed.
func (cache *BinaryCache) Get(key string) (format uint32, data []byte, ok bool) {
	var err error
	shaderPath := cache.path(key)
	defer func() {
		if err != nil {
			log.Warn().Err(err).Str("path", shaderPath).Msg("Could not read shader cache")
			os.Remove(shaderPath)
		}
	}()

	info, err := os.Stat(shaderPath)
	if errors.Is(err, os.ErrNotExist) {
		err = nil
		return
	}
	if err != nil {
		return
	}
	if cache.now().Sub(info.ModTime()) > cache.maxAge {
		os.Remove(shaderPath)
		return
	}

	file, err := os.Open(shaderPath)
	if err != nil {
		return
	}
	defer file.Close()

	if err = binary.Read(file, binary.LittleEndian, &format); err != nil {
		return
	}
	data, err = io.ReadAll(lz4.NewReader(file))
	if err != nil {
		return 0, nil, false
	}
	return format, data, true
}
