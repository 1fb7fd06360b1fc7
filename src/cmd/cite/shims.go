package main

import (
	"github.com/spf13/cobra"

	"citeassist/src/cmd/cite/addcmd"
	"citeassist/src/cmd/cite/editcmd"
	"citeassist/src/cmd/cite/exportcmd"
	"citeassist/src/cmd/cite/extractcmd"
	"citeassist/src/cmd/cite/formatcmd"
	"citeassist/src/cmd/cite/listcmd"
	"citeassist/src/cmd/cite/searchcmd"
	"citeassist/src/cmd/cite/stylecmd"
)

// Thin constructors so the root only depends on package main names.

func newAddCmd() *cobra.Command     { return addcmd.New() }
func newListCmd() *cobra.Command    { return listcmd.New() }
func newRemoveCmd() *cobra.Command  { return listcmd.NewRemove() }
func newMoveCmd() *cobra.Command    { return listcmd.NewMove() }
func newSortCmd() *cobra.Command    { return listcmd.NewSort() }
func newClearCmd() *cobra.Command   { return listcmd.NewClear() }
func newEditCmd() *cobra.Command    { return editcmd.New() }
func newFormatCmd() *cobra.Command  { return formatcmd.New() }
func newExtractCmd() *cobra.Command { return extractcmd.New() }
func newExportCmd() *cobra.Command  { return exportcmd.New() }
func newStyleCmd() *cobra.Command   { return stylecmd.New() }
func newSearchCmd() *cobra.Command  { return searchcmd.New() }
