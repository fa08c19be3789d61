/*
 * names.go, part of zeomerge.
 *
 * Copyright 2026 The zeomerge Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package batch

import (
	"strings"
)

//File names follow these patterns:
//	host:   Scaling-{zeo}-{metal}-HZ-{tail}
//	guest:  Scaling-{zeo}-Si-{reaction}-a_2.cif
//	merged: Scaling-{zeo}-{metal}-{reaction}-a_2.cif
//where zeo can contain dashes, as in ANO-O2.

const (
	namePrefix = "Scaling-"
	hostMark   = "HZ"
	nameTail   = "-a_2"
)

//HostName is the information in the name of a host file.
type HostName struct {
	Zeo   string
	Metal string
	//Reaction is set only if the name carries one of the known reactions.
	Reaction string
}

//findReaction returns the first reaction in reactions that appears in name.
func findReaction(name string, reactions []string) string {
	for _, r := range reactions {
		if strings.Contains(name, r) {
			return r
		}
	}
	return ""
}

//ParseHostName reads the zeolite and metal site from a host file name. The metal
//is the part right before "HZ", and the zeolite all that goes between the prefix
//and the metal. It returns false if the name doesn't follow the pattern.
func ParseHostName(name string, reactions []string) (HostName, bool) {
	parts := strings.Split(strings.Replace(name, namePrefix, "", 1), "-")
	hz := -1
	for i, p := range parts {
		if p == hostMark {
			hz = i
			break
		}
	}
	if hz < 2 {
		return HostName{}, false
	}
	return HostName{
		Zeo:      strings.Join(parts[:hz-1], "-"),
		Metal:    parts[hz-1],
		Reaction: findReaction(name, reactions),
	}, true
}

//GuestName returns the name of the guest file, with the molecule for reaction in
//the Si form of zeo.
func GuestName(zeo, reaction, ext string) string {
	return namePrefix + zeo + "-Si-" + reaction + nameTail + ext
}

//OutputName returns the name of the merged file for the given host and reaction.
func OutputName(zeo, metal, reaction, ext string) string {
	return namePrefix + zeo + "-" + metal + "-" + reaction + nameTail + ext
}

//MergedName is the information in the name of a merged file.
type MergedName struct {
	Zeo      string
	Metal    string
	Reaction string
}

//ParseMergedName reads the zeolite, metal site and reaction from a merged file name.
//Everything before the reaction, except for the prefix and the last dash-separated
//part, is the zeolite. A name with a single part before the reaction is taken as
//the zeolite, with an "unknown" metal. It returns false if no reaction is found.
func ParseMergedName(name string, reactions []string) (MergedName, bool) {
	r := findReaction(name, reactions)
	if r == "" {
		return MergedName{}, false
	}
	clean := strings.Replace(name, namePrefix, "", 1)
	head := strings.Trim(clean[:strings.Index(clean, r)], "-")
	parts := strings.Split(head, "-")
	if len(parts) == 1 {
		return MergedName{Zeo: parts[0], Metal: "unknown", Reaction: r}, true
	}
	return MergedName{Zeo: strings.Join(parts[:len(parts)-1], "-"), Metal: parts[len(parts)-1], Reaction: r}, true
}
