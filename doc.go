/*
 * doc.go, part of zeomerge.
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

/*Package zeomerge separates host framework atoms (zeolites and similar porous
crystals) from the guest molecules adsorbed in them, and puts the extracted
molecules into other frameworks without duplicated atoms.

	**Capabilities**

    Periodic neighbor graphs from covalent radii, built with a cell list,
	so the cost is linear in the number of atoms.

    Separation of a framework skeleton from a molecule: the framework grows one
	shell from its T atoms (Si, Al, P, Ge, Mg, Zn by default) and carbon atoms,
	with their direct neighbors, always stay with the molecule.

    Growth of a region from seed elements over any number of shells, with
	"safe" elements that are never selected and block the growth.

    Merging of a molecule into a host cell, dropping molecule atoms that
	sit on top of host atoms of the same element.

The package doesn't read or write files. The structio subpackage reads and
writes extended XYZ and CIF files, and the batch subpackage runs the whole
host/guest workflow over directories.

A Structure keeps atoms and coordinates apart: atom i has its Cartesian
coordinates in row i of the Coords matrix (see the v3 subpackage).

All functions are synchronous and the package keeps no global state, so
different structures can be processed concurrently.
*/
package zeomerge
