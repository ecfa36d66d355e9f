package util

import (
	"os"

	"github.com/TuftsBCB/seq"

	"github.com/amelie-iska/PEbA/io/msf"
)

func OpenFile(path string) *os.File {
	f, err := os.Open(path)
	Assert(err, "Could not open file '%s'", path)
	return f
}

func CreateFile(path string) *os.File {
	f, err := os.Create(path)
	Assert(err, "Could not create file '%s'", path)
	return f
}

func ReadMSA(path string) seq.MSA {
	f := OpenFile(path)
	defer f.Close()

	msa, err := msf.Read(f)
	Assert(err, "Could not read alignment '%s'", path)
	return msa
}
