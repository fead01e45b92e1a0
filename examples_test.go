package riffchunk

import (
	"bytes"
	"fmt"
	"log"
)

func exampleWave() Contents {
	return List(RiffID, NewChunkID("WAVE"),
		Data(NewChunkID("fmt "), make([]byte, 16)),
		List(ListID, NewChunkID("INFO"),
			Data(NewChunkID("INAM"), []byte("song\x00")),
		),
	)
}

func ExampleWrite() {
	var buf bytes.Buffer

	n, err := Write(&buf, exampleWave())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(n)
	fmt.Printf("% x\n", buf.Bytes()[:12])
	// Output:
	// 62
	// 52 49 46 46 36 00 00 00 57 41 56 45
}

func ExampleWalk() {
	b, err := Bytes(exampleWave())
	if err != nil {
		log.Fatal(err)
	}

	root, err := ParseBytes(b)
	if err != nil {
		log.Fatal(err)
	}

	err = Walk(root, nil, func(n Node, depth int) error {
		h := n.Header()
		if lt, ok := n.ListType(); ok {
			fmt.Printf("%*s%s %s size=%d\n", depth*2, "", h.ID, lt, h.Size)
		} else {
			fmt.Printf("%*s%s size=%d\n", depth*2, "", h.ID, h.Size)
		}

		return nil
	})
	if err != nil {
		log.Fatal(err)
	}
	// Output:
	// RIFF WAVE size=54
	//   fmt  size=16
	//   LIST INFO size=18
	//     INAM size=5
}

func ExampleLazyChunk_All() {
	b, err := Bytes(exampleWave())
	if err != nil {
		log.Fatal(err)
	}

	cur := NewCursor(bytes.NewReader(b))

	root, err := OpenLazy(cur, 0)
	if err != nil {
		log.Fatal(err)
	}

	for child, err := range root.All(cur) {
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println(child.ID(), child.Offset(), child.Size())
	}
	// Output:
	// fmt  12 16
	// LIST 36 18
}
