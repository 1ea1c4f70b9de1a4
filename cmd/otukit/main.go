// Copyright (C) The otukit Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package main

import (
	"github.com/microbio/otukit"
)

func main() {
	otukit.Main()
}
