// SPDX-License-Identifier: Unlicense OR MIT

package main

const mainUsage = `d3dcompiler-cli -tTARGET -eENTRYPOINT [-vXX] [-O?] [-hC/HEADER/FILE] HLSL/SHADER/FILE
Command line frontend for the d3dcompiler dll

OPTIONS AND ARGUMENTS
   -tTARGET        Compile to shader target TARGET (e.g. 'ps_4.0')
   -eENTRYPOINT    Compile entry point ENTRYPOINT and name of the C array
   -vXX            Use d3dcompiler_XX.dll (default: latest available one,
                   or $D3DCOMPILER_VERSION if set)
   -O?             Optimization level (0-3, default: 1)
   -hHEADER/FILE   C header file to create. Default: stdout
   -nCXX_NAMESPACE C++ Namespace for the generated header file,
                   nested namespaces separated by ':'
   -pC_PREFIX      Prefix for names in the C header file
   --warn-repeated Warn about options given more than once
   --help          Print this help
   SHADER/FILE     HLSL shader file (ASCII encoding), or a WGSL
                   shader file ending in .wgsl

Option values may be attached (-tps_4.0) or follow as the next
argument (-t ps_4.0). Includes are not supported.
`
