// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"bali/internal/lsp"
)

const lsName = "bali"

var (
	version = "0.0.1"
	handler protocol.Handler
)

func main() {
	commonlog.Configure(1, nil)

	baliHandler := lsp.NewBaliHandler()

	handler = protocol.Handler{
		Initialize:                     baliHandler.Initialize,
		Initialized:                    baliHandler.Initialized,
		Shutdown:                       baliHandler.Shutdown,
		TextDocumentDidOpen:            baliHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           baliHandler.TextDocumentDidClose,
		TextDocumentDidChange:          baliHandler.TextDocumentDidChange,
		TextDocumentCompletion:         baliHandler.TextDocumentCompletion,
		TextDocumentFormatting:         baliHandler.TextDocumentFormatting,
		TextDocumentSemanticTokensFull: baliHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting Bali LSP server", version)

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting Bali LSP server:", err)
		os.Exit(1)
	}
}
