package main

import (
	_ "github.com/CN-TU/go-flowfmt/modules/sources/jsonl"
)
