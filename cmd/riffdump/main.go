// This tool prints the chunk tree of a RIFF file (wav, avi, dls...).
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cwbudde/riffchunk"
)

var errMissingPath = errors.New("missing path argument")

type config struct {
	eager    bool
	hash     bool
	strict   bool
	describe bool
	verbose  bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := command().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func command() *cobra.Command {
	var cfg config

	cmd := &cobra.Command{
		Use:   "riffdump [file]",
		Short: "Print the chunk tree of a RIFF file",
		Long: `Riffdump walks a RIFF file and prints one line per chunk: its id, list type
for containers, declared size and offset. By default chunks are read lazily,
one header at a time; use --eager to load the whole file first.`,
		Example:      "riffdump --hash --describe kick.wav",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errMissingPath
			}

			return dump(args[0], cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().BoolVar(&cfg.eager, "eager", false, "read the whole tree in memory before printing")
	cmd.Flags().BoolVar(&cfg.hash, "hash", false, "print the xxhash64 of every leaf payload")
	cmd.Flags().BoolVar(&cfg.strict, "strict", false, "reject files missing their final pad byte")
	cmd.Flags().BoolVar(&cfg.describe, "describe", false, "decode well known chunks (fmt, fact, data, INFO entries)")
	cmd.Flags().BoolVarP(&cfg.verbose, "verbose", "v", false, "debug logging on stderr")

	return cmd
}

func dump(path string, cfg config, out, logOut io.Writer) error {
	level := zerolog.InfoLevel
	if cfg.verbose {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: logOut, NoColor: true}).
		Level(level).
		With().Timestamp().Str("file", path).Logger()

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	opts := []riffchunk.ReadOption{riffchunk.WithLogger(logger)}
	if cfg.strict {
		opts = append(opts, riffchunk.WithStrictPadding())
	}

	var (
		root riffchunk.Node
		cur  *riffchunk.Cursor
	)

	if cfg.eager {
		chunk, n, err := riffchunk.ReadEager(file, 0, opts...)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		logger.Debug().Int64("bytes", n).Msg("tree loaded")

		root = chunk
	} else {
		cur = riffchunk.NewCursor(file, opts...)

		lazy, err := riffchunk.OpenLazy(cur, 0)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}

		info, err := file.Stat()
		if err != nil {
			return err
		}

		if err := checkBounds(lazy, info.Size(), cfg.strict); err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}

		root = lazy
	}

	p := &printer{out: out, cfg: cfg, registry: newDefaultRegistry()}

	err = riffchunk.Walk(root, cur, func(n riffchunk.Node, depth int) error {
		return p.print(n, cur, depth)
	})
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", path, err)
	}

	return nil
}

// checkBounds reports a root chunk running past the end of the file. Children
// must fit in their parent, so this also catches leaves truncated by a short
// file even when their payloads are never read.
func checkBounds(root *riffchunk.LazyChunk, fileSize int64, strict bool) error {
	end := root.Offset() + riffchunk.HeaderSize + int64(root.Size())

	if strict {
		end = root.Offset() + root.TotalSize()
	}

	if end <= fileSize {
		return nil
	}

	return &riffchunk.ChunkError{
		Kind:   riffchunk.ErrUnexpectedEOF,
		Op:     "check bounds",
		Offset: fileSize,
		ID:     root.ID(),
		Detail: fmt.Sprintf("chunk ends at %d", end),
	}
}

type printer struct {
	out      io.Writer
	cfg      config
	registry *registry
	// listTypes holds the list type of the container at each depth.
	listTypes []riffchunk.ChunkID
}

func (p *printer) print(n riffchunk.Node, cur *riffchunk.Cursor, depth int) error {
	h := n.Header()

	var line strings.Builder

	line.WriteString(strings.Repeat("  ", depth))
	line.WriteString(h.ID.String())

	p.listTypes = p.listTypes[:depth]

	listType, isContainer := n.ListType()
	if isContainer {
		fmt.Fprintf(&line, " %s", listType)
	}

	fmt.Fprintf(&line, " size=%d", h.Size)

	if lazy, ok := n.(*riffchunk.LazyChunk); ok {
		fmt.Fprintf(&line, " offset=%d", lazy.Offset())
	}

	if !isContainer && (p.cfg.hash || p.cfg.describe) {
		payload, err := n.Payload(cur)
		if err != nil {
			return err
		}

		if p.cfg.hash {
			fmt.Fprintf(&line, " xxhash=%016x", xxhash.Sum64(payload))
		}

		if p.cfg.describe {
			var parent riffchunk.ChunkID
			if depth > 0 {
				parent = p.listTypes[depth-1]
			}

			desc, err := p.registry.describe(h.ID, parent, payload)
			if err != nil {
				return err
			}

			if desc != "" {
				line.WriteString(" ")
				line.WriteString(desc)
			}
		}
	}

	p.listTypes = append(p.listTypes, listType)

	_, err := fmt.Fprintln(p.out, line.String())

	return err
}
