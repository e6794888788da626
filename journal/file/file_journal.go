package file

import (
	"encoding/binary"
	"errors"
	"fmt"
	"github.com/farwydi/triage"
	"hash"
	"hash/crc32"
	"io"
	"math"
	"os"
	"sync"
)

// Layout: [crc32 of all record data][offset of the first unread record]
// followed by records of [uint16 size][data].
const (
	CRC32HashOffset int64 = 0
	CRC32HashSize   int64 = 4
	SkipAheadOffset       = CRC32HashOffset + CRC32HashSize
	SkipAheadSize   int64 = 8
	DataOffset            = SkipAheadOffset + SkipAheadSize
	HeadSize              = CRC32HashSize + SkipAheadSize
	MetaElementSize       = 2
)

func NewJournal(file *os.File) (*Journal, error) {
	return (&Journal{
		file:  file,
		order: binary.BigEndian,
		sum:   crc32.NewIEEE(),
	}).checkFile()
}

type Journal struct {
	file  *os.File
	order binary.ByteOrder
	mx    sync.Mutex

	sum   hash.Hash32
	count int
	mw    io.Writer
}

func (j *Journal) Len() int {
	j.mx.Lock()
	defer j.mx.Unlock()
	return j.count
}

func (j *Journal) Close() error {
	j.mx.Lock()
	defer j.mx.Unlock()
	return j.file.Close()
}

func (j *Journal) checkFile() (*Journal, error) {
	j.mw = io.MultiWriter(j.file, j.sum)

	_, err := j.file.Seek(0, io.SeekStart)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, HeadSize)

	_, err = io.ReadFull(j.file, buf)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return j, j.writeHead(buf)
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrInvalidFile
		}
		return nil, err
	}

	fileSum := j.order.Uint32(buf[CRC32HashOffset:SkipAheadOffset])
	skipAhead := int64(j.order.Uint64(buf[SkipAheadOffset:DataOffset]))
	currOffset := DataOffset

	tr := io.TeeReader(j.file, j.sum)

	for {
		size, err := j.readMeta(buf)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, ErrInvalidFile
			}
			return nil, err
		}

		currOffset += MetaElementSize

		if len(buf) < size {
			buf = make([]byte, size)
		}

		_, err = io.ReadFull(tr, buf[:size])
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, ErrInvalidFile
			}
			return nil, err
		}

		currOffset += int64(size)

		if currOffset > skipAhead {
			j.count++
		}
	}

	if j.sum.Sum32() != fileSum {
		return nil, ErrInvalidFile
	}

	if skipAhead < DataOffset || skipAhead > currOffset {
		return nil, ErrInvalidFile
	}

	return j, nil
}

func (j *Journal) writeHead(bs []byte) error {
	j.order.PutUint32(bs[CRC32HashOffset:SkipAheadOffset], 0)
	j.order.PutUint64(bs[SkipAheadOffset:DataOffset], uint64(DataOffset))

	_, err := j.file.Write(bs[:HeadSize])
	return err
}

// reset drops fully consumed records so the file does not grow forever.
func (j *Journal) reset(bs []byte) error {
	err := j.file.Truncate(0)
	if err != nil {
		return err
	}

	_, err = j.file.Seek(0, io.SeekStart)
	if err != nil {
		return err
	}

	j.sum.Reset()

	return j.writeHead(bs)
}

func (j *Journal) readMeta(bs []byte) (size int, err error) {
	metaElementBuf := bs[0:MetaElementSize]

	_, err = io.ReadFull(j.file, metaElementBuf)
	if err != nil {
		return 0, err
	}

	return int(j.order.Uint16(metaElementBuf)), nil
}

func (j *Journal) writeMeta(bs []byte, size int) error {
	metaElementBuf := bs[0:MetaElementSize]

	j.order.PutUint16(metaElementBuf, uint16(size))

	_, err := j.file.Write(metaElementBuf)
	return err
}

func (j *Journal) updateSum(bs []byte) error {
	crc32SumBuf := bs[0:CRC32HashSize]

	j.order.PutUint32(crc32SumBuf, j.sum.Sum32())
	_, err := j.file.WriteAt(crc32SumBuf, CRC32HashOffset)
	return err
}

func (j *Journal) Push(visit *triage.Visit) error {
	data, err := visit.MarshalBinary()
	if err != nil {
		return err
	}

	size := len(data)

	if size > math.MaxUint16 {
		return fmt.Errorf("visit too large: %d over %d", size, math.MaxUint16)
	}

	bs := bsPool.Get().([]byte)
	defer bsPool.Put(bs)

	j.mx.Lock()
	defer j.mx.Unlock()

	err = j.writeMeta(bs, size)
	if err != nil {
		return err
	}

	_, err = j.mw.Write(data)
	if err != nil {
		return err
	}

	j.count++

	return j.updateSum(bs)
}

func (j *Journal) Eject(limit int) (visits []*triage.Visit, err error) {
	j.mx.Lock()
	defer j.mx.Unlock()

	if limit > j.count {
		limit = j.count
	}

	if limit < 0 {
		limit = j.count
	}

	if limit == 0 {
		return nil, nil
	}

	visits = make([]*triage.Visit, 0, limit)

	skipAheadBuf := make([]byte, SkipAheadSize)
	_, err = j.file.ReadAt(skipAheadBuf, SkipAheadOffset)
	if err != nil {
		return nil, err
	}

	skipAhead := int64(j.order.Uint64(skipAheadBuf))

	_, err = j.file.Seek(skipAhead, io.SeekStart)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, HeadSize)
	for len(visits) < limit {
		var size int
		size, err = j.readMeta(buf)
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
			}
			break
		}

		if len(buf) < size {
			buf = make([]byte, size)
		}

		data := buf[0:size]
		_, err = io.ReadFull(j.file, data)
		if err != nil {
			break
		}

		visit := new(triage.Visit)
		err = visit.UnmarshalBinary(data)
		if err != nil {
			break
		}

		skipAhead += MetaElementSize + int64(size)
		j.count--
		visits = append(visits, visit)
	}

	if j.count == 0 && err == nil {
		return visits, j.reset(buf)
	}

	j.order.PutUint64(skipAheadBuf, uint64(skipAhead))
	_, werr := j.file.WriteAt(skipAheadBuf, SkipAheadOffset)
	if werr != nil && err == nil {
		err = werr
	}

	_, serr := j.file.Seek(0, io.SeekEnd)
	if serr != nil && err == nil {
		err = serr
	}

	return visits, err
}
