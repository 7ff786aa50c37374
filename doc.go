/*
 * doc.go, part of molforge.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 * GNU General Public License for more details.
 */

/*Package mol models molecules as annotated graphs for metal-complex
generation: atoms with 3D positions, a bonding graph inferred from
covalent-radii cutoffs or imposed from bond orders, a charge/spin state
estimated by electron counting, geometric sanity checks, and
coordination-geometry classification of metal centers.

The bond-order mapping, keyed by 1-based atom pairs as in the mol2
format, is the authoritative description of bonding whenever it is
nonempty; the 0/1 adjacency matrix is derived from it. Mutation
operations keep the two in lockstep.

Structures enter and leave through Convert and the xyz, rxyz and mol2
codecs; only mol2 round-trips bonding, the unit cell and the electronic
state.*/
package mol
