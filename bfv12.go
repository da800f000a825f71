/*
Package bfv12 is a toy implementation of the B/FV (Brakerski/Fan-Vercauteren)
somewhat-homomorphic encryption scheme over Z_t[x]/(x^N+1), supporting
encrypted addition and a bounded number of encrypted multiplications with
relinearization.

It is a didactic library: its contract is mathematical correctness within
the noise budget implied by the parameters, not production security. It does
not implement bootstrapping and its arithmetic is not constant-time.
*/
package bfv12
