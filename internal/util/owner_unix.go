// Copyright (c) 2025-2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package util

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
	"syscall"
)

// GetFileOwner returns the owner, group, and mode of a file from its FileInfo,
// names are returned when they resolve otherwise numeric ids
func GetFileOwner(stat os.FileInfo) (owner string, group string, mode string, err error) {
	uid, gid, err := GetFileIDs(stat)
	if err != nil {
		return "", "", "", err
	}

	group = strconv.Itoa(gid)
	owner = strconv.Itoa(uid)

	grp, err := user.LookupGroupId(group)
	if err == nil {
		group = grp.Name
	}

	usr, err := user.LookupId(owner)
	if err == nil {
		owner = usr.Username
	}

	mode = fmt.Sprintf("%04o", stat.Mode()&os.ModePerm)

	return owner, group, mode, nil
}

// GetFileIDs returns the numeric owner and group of a file
func GetFileIDs(stat os.FileInfo) (uid int, gid int, err error) {
	ssys, ok := stat.Sys().(*syscall.Stat_t)
	if !ok {
		return -1, -1, fmt.Errorf("could not get platform stat information")
	}

	return int(ssys.Uid), int(ssys.Gid), nil
}
