package connection

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Message is one complete frame read off a connection: the parsed fixed
// header plus the raw AVP body bytes. The body is decoded by the codec
// boundary, never here.
type Message struct {
	Header *Header
	Body   []byte
}

// Buffer pool for message reading
var readerBufferPool sync.Pool

const (
	maxPooledLength = 1 << 12 // 4096 bytes
)

func newReaderBuffer() *bytes.Buffer {
	if v := readerBufferPool.Get(); v != nil {
		return v.(*bytes.Buffer)
	}
	return bytes.NewBuffer(make([]byte, maxPooledLength))
}

func putReaderBuffer(b *bytes.Buffer) {
	if cap(b.Bytes()) == maxPooledLength {
		b.Reset()
		readerBufferPool.Put(b)
	}
}

func readerBufferSlice(buf *bytes.Buffer, l int) []byte {
	b := buf.Bytes()
	if l <= maxPooledLength && cap(b) >= maxPooledLength {
		return b[:l]
	}
	return make([]byte, l)
}

// ReadMessage reads exactly one length-delimited message from the stream.
// The frame size is driven by the header's declared length, never by how
// the transport happens to chunk its reads. A clean end of stream at a
// frame boundary returns io.EOF; end of stream mid-frame returns
// ErrTruncatedMessage.
func ReadMessage(reader io.Reader) (*Message, error) {
	return ReadMessageLimit(reader, 0)
}

// ReadMessageLimit is ReadMessage with an upper bound on the declared
// message length. maxLength of 0 means no bound.
func ReadMessageLimit(reader io.Reader, maxLength uint32) (*Message, error) {
	buf := newReaderBuffer()
	defer putReaderBuffer(buf)

	hdr := buf.Bytes()[:HeaderLength]
	n, err := io.ReadFull(reader, hdr)
	if err != nil {
		if err == io.EOF && n == 0 {
			// Peer closed between frames.
			return nil, io.EOF
		}
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return nil, ErrTruncatedMessage{Expected: HeaderLength, Read: n}
		}
		return nil, err
	}

	header, err := ParseHeader(hdr)
	if err != nil {
		return nil, err
	}
	if maxLength > 0 && header.MessageLength > maxLength {
		return nil, ErrMalformedHeader{
			Reason: fmt.Sprintf("declared length %d exceeds limit %d", header.MessageLength, maxLength),
		}
	}

	m := &Message{Header: header}
	bodyLen := int(header.MessageLength) - HeaderLength
	if bodyLen == 0 {
		m.Body = []byte{}
		return m, nil
	}

	b := readerBufferSlice(buf, bodyLen)
	n, err = io.ReadFull(reader, b)
	if err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return m, ErrTruncatedMessage{Expected: int(header.MessageLength), Read: HeaderLength + n}
		}
		return m, err
	}

	m.Body = make([]byte, bodyLen)
	copy(m.Body, b)

	return m, nil
}

// WriteMessage writes a serialized message to the transport in full.
func WriteMessage(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n, err := w.Write(data)
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
